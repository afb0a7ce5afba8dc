package payload

import (
	"context"

	"github.com/01moynul/baaje-storefront/internal/apperr"
)

// Upload is one file received with a write request, already checked for size
// and type.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Destination says where an entity's images are stored. Stored names are
// "<Prefix>-<unique><ext>"; an empty Prefix uses the upload's form field.
type Destination struct {
	Dir    string
	Prefix string
}

var (
	ProductImages  = Destination{Dir: "products", Prefix: "product"}
	CategoryImages = Destination{Dir: "categories", Prefix: "category"}
	BannerImages   = Destination{Dir: "banners", Prefix: "banner"}
	SettingsImages = Destination{Dir: "settings"}
)

// FileStore persists uploads and returns their public path,
// e.g. "/uploads/products/product-<id>.jpg".
type FileStore interface {
	Save(ctx context.Context, dst Destination, u Upload) (string, error)
	Remove(ctx context.Context, path string) error
}

// ResolveImage stores a single upload. A nil upload leaves the field absent,
// so an update without a file keeps the stored image.
func ResolveImage(ctx context.Context, fs FileStore, dst Destination, u *Upload) (Optional[string], error) {
	if u == nil {
		return Optional[string]{}, nil
	}
	path, err := fs.Save(ctx, dst, *u)
	if err != nil {
		return Optional[string]{}, apperr.Upstream("store image", err)
	}
	return Some(path), nil
}

// ResolveImages builds the final image list of a multi-image entity: the
// retained paths in their given order followed by the newly stored uploads in
// upload order. The result is absent when the caller sent neither a retained
// list nor files. The second return value lists the paths written by this
// call so the caller can remove them if the surrounding write fails.
func ResolveImages(ctx context.Context, fs FileStore, dst Destination, retained Optional[[]string], uploads []Upload) (Optional[[]string], []string, error) {
	if !retained.Set && len(uploads) == 0 {
		return Optional[[]string]{}, nil, nil
	}

	stored := make([]string, 0, len(uploads))
	for _, u := range uploads {
		path, err := fs.Save(ctx, dst, u)
		if err != nil {
			Discard(ctx, fs, stored)
			return Optional[[]string]{}, nil, apperr.Upstream("store image", err)
		}
		stored = append(stored, path)
	}

	images := make([]string, 0, len(retained.Value)+len(stored))
	images = append(images, retained.Value...)
	images = append(images, stored...)
	return Some(images), stored, nil
}

// Discard removes previously stored files, ignoring failures.
func Discard(ctx context.Context, fs FileStore, paths []string) {
	for _, p := range paths {
		_ = fs.Remove(ctx, p)
	}
}
