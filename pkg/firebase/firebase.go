package firebase

import (
	"context"
	"fmt"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/anonto42/recipe-hub/backend/pkg/logger"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and the default storage bucket
type App struct {
	FirebaseApp *firebase.App
	Bucket      *gcs.BucketHandle
	BucketName  string
}

// InitFirebase initializes the Firebase application and its storage bucket
func InitFirebase(ctx context.Context, credentialsPath, bucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if bucket == "" {
		return nil, fmt.Errorf("firebase storage bucket not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	handle, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error opening firebase bucket: %w", err)
	}

	logger.Info().Str("bucket", bucket).Msg("Firebase app and storage bucket initialized")
	return &App{FirebaseApp: firebaseApp, Bucket: handle, BucketName: bucket}, nil
}
