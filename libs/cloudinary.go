package libs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joho/godotenv"
)

func UploadToCloudinary(localPath, folder string) (string, string, error) {
	godotenv.Load()

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return "", "", fmt.Errorf("file not found: %s", localPath)
	}

	cld, err := newClient()
	if err != nil {
		return "", "", err
	}

	return uploadFile(cld, localPath, folder)
}

func newClient() (*cloudinary.Cloudinary, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		cldURL := os.Getenv("CLOUDINARY_URL")
		if cldURL == "" {
			return nil, fmt.Errorf("cloudinary environment variables not set")
		}

		cld, err := cloudinary.NewFromURL(cldURL)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from URL fail: %v", err)
		}
		return cld, nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from params fail: %v", err)
	}
	return cld, nil
}

func uploadFile(cld *cloudinary.Cloudinary, localPath, folder string) (string, string, error) {
	resp, err := cld.Upload.Upload(context.Background(), localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("%s_%d", folder, time.Now().UnixNano()),
		Folder:   folder,
	})

	// The local copy is a staging file only, remove it either way.
	os.Remove(localPath)

	if err != nil {
		return "", "", err
	}
	if resp == nil {
		return "", "", fmt.Errorf("cloudinary response is nil")
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	if url == "" {
		return "", "", fmt.Errorf("cloudinary returned no URL")
	}

	return url, resp.PublicID, nil
}

func DeleteFromCloudinary(publicID string) error {
	cld, err := newClient()
	if err != nil {
		return err
	}

	result, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %v", err)
	}

	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}
