package domain

// Art styles accepted by the generation endpoints. StyleRandom (or an empty
// style) picks one of the concrete styles per image.
const (
	StyleDigitalArt     = "digital art"
	StyleCartoon        = "cartoon"
	Style3DRender       = "3D render"
	StyleWatercolor     = "watercolor"
	StylePopArt         = "pop art"
	StylePhotorealistic = "photorealistic"
	StyleRandom         = "random"
)

// ArtStyles lists the concrete styles a random pick draws from.
var ArtStyles = []string{
	StyleDigitalArt,
	StyleCartoon,
	Style3DRender,
	StyleWatercolor,
	StylePopArt,
	StylePhotorealistic,
}

// ImageVariant is one resized rendition of a generated image.
type ImageVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int    `json:"bytes"`
}

// GeneratedImage is the pipeline output for a single item/anchor pair. The
// pipeline itself never persists these; saving them into a palace is the
// caller's job.
type GeneratedImage struct {
	Item        string         `json:"item"`
	AnchorPoint string         `json:"anchor_point"`
	Prompt      string         `json:"prompt"`
	ArtStyle    string         `json:"art_style"`
	SourceURL   string         `json:"source_url"`
	Variants    []ImageVariant `json:"variants"`
	SrcSet      string         `json:"src_set"`
}
