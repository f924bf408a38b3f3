package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"mime/multipart"

	"knowshare/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Manager groups all of a post's remote media objects under one folder key.
// The key is generated once at post creation and reused for every later
// replacement, so the remote folder is stable for the post's lifetime.
type Manager struct {
	cld        *cloudinary.Cloudinary
	rootFolder string
}

func NewManager(cloudinaryURL, rootFolder string) (*Manager, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &Manager{cld: cld, rootFolder: rootFolder}, nil
}

// NewFolderKey returns a short random identifier for a new post's folder.
func NewFolderKey() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// FolderPath is the remote path all of a post's assets live under.
func (m *Manager) FolderPath(folderKey string) string {
	return fmt.Sprintf("%s/posts/%s", m.rootFolder, folderKey)
}

// Upload streams each file to the remote store under the post's folder, in
// input order. Any single failure aborts the whole batch.
func (m *Manager) Upload(ctx context.Context, files []*multipart.FileHeader, folderKey string) ([]models.MediaAsset, error) {
	assets := make([]models.MediaAsset, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		result, err := m.cld.Upload.Upload(ctx, f, uploader.UploadParams{
			Folder: m.FolderPath(folderKey),
		})
		f.Close()
		if err != nil {
			return nil, err
		}

		assets = append(assets, models.MediaAsset{
			SecureURL: result.SecureURL,
			PublicID:  result.PublicID,
		})
	}
	return assets, nil
}

// Replace deletes the post's existing remote objects best-effort, then
// uploads the new batch under the same folder key. A stale-cleanup failure
// is logged and never blocks the replacement.
func (m *Manager) Replace(ctx context.Context, existing []models.MediaAsset, files []*multipart.FileHeader, folderKey string) ([]models.MediaAsset, error) {
	if len(existing) > 0 {
		publicIDs := make([]string, len(existing))
		for i, asset := range existing {
			publicIDs[i] = asset.PublicID
		}
		_, err := m.cld.Admin.DeleteAssets(ctx, admin.DeleteAssetsParams{
			PublicIDs: api.CldAPIArray(publicIDs),
		})
		if err != nil {
			log.Printf("[media] failed to delete stale assets under %s: %v", folderKey, err)
		}
	}

	return m.Upload(ctx, files, folderKey)
}

// DeleteAll removes every object under the post's folder and then the
// folder itself. Callers treat failure as non-fatal.
func (m *Manager) DeleteAll(ctx context.Context, folderKey string) error {
	path := m.FolderPath(folderKey)

	_, err := m.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{path},
	})
	if err != nil {
		return err
	}

	_, err = m.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: path})
	return err
}
