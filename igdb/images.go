package igdb

// ImageBaseURL is the IGDB image CDN prefix
const ImageBaseURL = "https://images.igdb.com/igdb/image/upload"

// ImageSize is an IGDB image size preset
type ImageSize string

const (
	SizeThumb         ImageSize = "thumb"
	SizeCoverSmall    ImageSize = "cover_small"
	SizeCoverBig      ImageSize = "cover_big"
	SizeScreenshotMed ImageSize = "screenshot_med"
	SizeScreenshotBig ImageSize = "screenshot_big"
	SizeLogoMed       ImageSize = "logo_med"
	Size720p          ImageSize = "720p"
	Size1080p         ImageSize = "1080p"
)

// ImageURL builds the CDN URL for an image id, or "" when the id is empty
func ImageURL(imageID string, size ImageSize) string {
	if imageID == "" {
		return ""
	}
	if size == "" {
		size = SizeThumb
	}
	return ImageBaseURL + "/t_" + string(size) + "/" + imageID + ".jpg"
}

// URLFor builds the CDN URL for this image at the given size
func (i *Image) URLFor(size ImageSize) string {
	if i == nil {
		return ""
	}
	return ImageURL(i.ImageID, size)
}
