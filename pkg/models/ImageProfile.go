package models

/*
ImageProfile bounds an optimized image. Images already inside MaxWidth x
MaxHeight are re-encoded but never enlarged.
*/
type ImageProfile struct {
	Name      string
	MaxWidth  uint
	MaxHeight uint
	Quality   int
}

// ImageVariant is a width-bounded copy written next to its source with Suffix appended.
type ImageVariant struct {
	Suffix  string
	Width   uint
	Quality int
}

var (
	GalleryImageProfile = ImageProfile{Name: "gallery", MaxWidth: 1200, MaxHeight: 800, Quality: 80}
	TeamImageProfile    = ImageProfile{Name: "team", MaxWidth: 400, MaxHeight: 400, Quality: 85}

	ResponsiveImageVariants = []ImageVariant{
		{Suffix: "-sm", Width: 640, Quality: 80},
		{Suffix: "-md", Width: 1024, Quality: 80},
	}
)

type OptimizedImage struct {
	Source        string
	Output        string
	OriginalSize  int64
	OptimizedSize int64
	Width         int
	Height        int
}

type OptimizeSummary struct {
	Profile        string
	Images         []OptimizedImage
	Failed         []string
	OriginalBytes  int64
	OptimizedBytes int64
}

func (s OptimizeSummary) SavingsPercent() float64 {
	if s.OriginalBytes == 0 {
		return 0
	}

	return (1 - float64(s.OptimizedBytes)/float64(s.OriginalBytes)) * 100
}
