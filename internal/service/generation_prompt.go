package service

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
)

// Word pools for association prompts. Vivid, dynamic imagery is what makes
// the mnemonic stick, so every prompt gets a random adjective and action.
var (
	promptAdjectives = []string{
		"giant", "glowing", "melting", "translucent", "upside-down",
		"neon", "furry", "golden", "miniature", "floating",
	}

	promptActions = []string{
		"bursting out of", "balancing on", "wrapped around", "crashing through",
		"dangling from", "sprouting from", "orbiting", "leaning against",
	}
)

// validArtStyle reports whether the requested style is empty, "random" or
// one of the concrete styles.
func validArtStyle(requested string) bool {
	if requested == "" || requested == domain.StyleRandom {
		return true
	}

	for _, style := range domain.ArtStyles {
		if style == requested {
			return true
		}
	}

	return false
}

// resolveArtStyle maps an already validated style to a concrete one, picking
// at random for StyleRandom or an empty request.
func resolveArtStyle(requested string, rng *rand.Rand) string {
	if requested == "" || requested == domain.StyleRandom {
		return domain.ArtStyles[rng.Intn(len(domain.ArtStyles))]
	}
	return requested
}

// associationPrompt synthesizes the text-to-image prompt for one item/anchor
// pair.
func associationPrompt(item, anchorPoint, artStyle string, rng *rand.Rand) string {
	adjective := promptAdjectives[rng.Intn(len(promptAdjectives))]
	action := promptActions[rng.Intn(len(promptActions))]

	return fmt.Sprintf(
		"A %s %s %s the %s, %s style, highly detailed, single clear subject",
		adjective, item, action, anchorPoint, artStyle,
	)
}

// roomPrompt synthesizes the prompt for a themed room layout whose anchor
// points must all be clearly visible.
func roomPrompt(roomType string, anchorPoints []string) string {
	return fmt.Sprintf(
		"Interior view of a %s containing the following distinct features, each clearly visible: %s. Wide angle, evenly lit, no people",
		roomType, strings.Join(anchorPoints, ", "),
	)
}
