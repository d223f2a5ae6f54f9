package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/config"
	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/pkg/imageapi"
	"github.com/aaronipollock/memory-palace-sub001/pkg/imgproc"
	"github.com/aaronipollock/memory-palace-sub001/pkg/storage"
)

// Pair is one positional item/anchor pairing, created per request and
// discarded after the response.
type Pair struct {
	Item        string
	AnchorPoint string
}

// pairAssociations pairs memorables with anchor points one-to-one by index,
// truncating to the shorter list when lengths differ.
func pairAssociations(anchorPoints, memorables []string) []Pair {
	n := len(anchorPoints)
	if len(memorables) < n {
		n = len(memorables)
	}

	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{Item: memorables[i], AnchorPoint: anchorPoints[i]})
	}
	return pairs
}

type GenerationService struct {
	client     imageapi.Client
	optimizer  *imgproc.Optimizer
	uploader   storage.Uploader
	httpClient *http.Client
	sleep      func(context.Context, time.Duration) error
	rng        *rand.Rand
	retryDelay time.Duration
	maxRetries int
}

type GenerationOption func(*GenerationService)

// WithSleep replaces the delay function, letting tests observe the retry
// schedule without real waits.
func WithSleep(sleep func(context.Context, time.Duration) error) GenerationOption {
	return func(s *GenerationService) {
		s.sleep = sleep
	}
}

// WithRand replaces the randomness source for deterministic prompts.
func WithRand(rng *rand.Rand) GenerationOption {
	return func(s *GenerationService) {
		s.rng = rng
	}
}

// WithHTTPClient replaces the client used to download generated images.
func WithHTTPClient(client *http.Client) GenerationOption {
	return func(s *GenerationService) {
		s.httpClient = client
	}
}

func NewGenerationService(
	client imageapi.Client,
	optimizer *imgproc.Optimizer,
	uploader storage.Uploader,
	cfg config.ImageAPIConfig,
	opts ...GenerationOption,
) *GenerationService {
	s := &GenerationService{
		client:     client,
		optimizer:  optimizer,
		uploader:   uploader,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		sleep:      sleepContext,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		retryDelay: cfg.RetryDelay,
		maxRetries: cfg.MaxRetries,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type GenerateImagesRequest struct {
	AnchorPoints []string `json:"anchorPoints" validate:"required,min=1,dive,required"`
	Memorables   []string `json:"memorables" validate:"required,min=1,dive,required"`
	ArtStyle     string   `json:"artStyle" validate:"omitempty"`
}

// GenerateAssociations turns item/anchor pairs into generated, optimized
// images. The batch is all-or-nothing: any single failure discards all
// accumulated results and surfaces one error, because a partial palette
// would confuse the end user.
func (s *GenerationService) GenerateAssociations(ctx context.Context, req GenerateImagesRequest) ([]domain.GeneratedImage, error) {
	if !validArtStyle(req.ArtStyle) {
		return nil, apperr.ValidationFailed(fmt.Sprintf("unknown art style %q", req.ArtStyle))
	}

	pairs := pairAssociations(req.AnchorPoints, req.Memorables)
	if len(pairs) == 0 {
		return nil, apperr.ValidationFailed("at least one item/anchor pair is required")
	}

	// Pairs are processed strictly sequentially; the external API is
	// rate-limited and concurrent calls would trip it.
	images := make([]domain.GeneratedImage, 0, len(pairs))
	for _, pair := range pairs {
		style := resolveArtStyle(req.ArtStyle, s.rng)
		prompt := associationPrompt(pair.Item, pair.AnchorPoint, style, s.rng)

		sourceURL, err := s.client.Generate(ctx, prompt)
		if err != nil {
			s.logUpstreamError("association", err)
			return nil, apperr.GenerationFailed(err)
		}

		image := domain.GeneratedImage{
			Item:        pair.Item,
			AnchorPoint: pair.AnchorPoint,
			Prompt:      prompt,
			ArtStyle:    style,
			SourceURL:   sourceURL,
		}

		if err := s.optimize(ctx, &image); err != nil {
			s.logUpstreamError("optimize", err)
			return nil, apperr.GenerationFailed(err)
		}

		images = append(images, image)
	}

	return images, nil
}

// RoomGeneration is the result of a room-layout generation call.
type RoomGeneration struct {
	ImageURL string `json:"roomImage"`
	Prompt   string `json:"prompt"`
}

type GenerateRoomRequest struct {
	RoomType     string   `json:"roomType" validate:"required"`
	AnchorPoints []string `json:"anchorPoints" validate:"required,min=1,dive,required"`
}

// GenerateRoom renders a themed room image. The external API's rate limit
// window forces a fixed delay before every attempt; only 429/500 responses
// are retried, up to the configured attempt budget.
func (s *GenerationService) GenerateRoom(ctx context.Context, req GenerateRoomRequest) (*RoomGeneration, error) {
	prompt := roomPrompt(req.RoomType, req.AnchorPoints)

	var imageURL string
	err := callWithRetry(ctx, s.maxRetries, s.retryDelay, s.sleep, imageapi.IsRetryable,
		func(ctx context.Context) error {
			url, err := s.client.Generate(ctx, prompt)
			if err != nil {
				return err
			}
			imageURL = url
			return nil
		})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logUpstreamError("room", err)
		return nil, apperr.GenerationFailed(err)
	}

	return &RoomGeneration{ImageURL: imageURL, Prompt: prompt}, nil
}

// optimize downloads the source image, produces the fixed resized variants,
// uploads them and attaches variant metadata plus the srcset descriptor.
func (s *GenerationService) optimize(ctx context.Context, image *domain.GeneratedImage) error {
	data, err := s.download(ctx, image.SourceURL)
	if err != nil {
		return err
	}

	variants, err := s.optimizer.Variants(data)
	if err != nil {
		return err
	}

	imageID := uuid.NewString()
	urlsByWidth := make(map[int]string, len(variants))

	for _, v := range variants {
		key := fmt.Sprintf("generated/%s/w%d.jpg", imageID, v.Width)
		url, err := s.uploader.Upload(ctx, key, "image/jpeg", v.Data)
		if err != nil {
			return err
		}

		urlsByWidth[v.Width] = url
		image.Variants = append(image.Variants, domain.ImageVariant{
			URL:    url,
			Width:  v.Width,
			Height: v.Height,
			Bytes:  len(v.Data),
		})
	}

	image.SrcSet = imgproc.SrcSet(urlsByWidth)
	return nil
}

func (s *GenerationService) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// logUpstreamError records full diagnostic context server-side. The
// user-facing error stays generic; the production error handler never
// exposes these details.
func (s *GenerationService) logUpstreamError(stage string, err error) {
	var apiErr *imageapi.APIError
	if errors.As(err, &apiErr) {
		log.Printf("[GENERATION] %s failed: status=%d body=%q", stage, apiErr.StatusCode, apiErr.Body)
		return
	}
	log.Printf("[GENERATION] %s failed: %v", stage, err)
}
