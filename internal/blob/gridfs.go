// Package blob stores uploaded logo images in MongoDB GridFS. The rest of
// the system only ever sees the returned file id, served back through the
// public /logos route.
package blob

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps a GridFS bucket over one Mongo database.
type Store struct {
	db *mongo.Database
}

// New connects to Mongo and pings it before returning a Store.
func New(ctx context.Context, connectionString, database string) (*Store, error) {
	const op = "blob.New"
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: client.Database(database)}, nil
}

// Upload streams r into GridFS under filename and returns the hex file id.
func (s *Store) Upload(r io.Reader, filename string) (string, error) {
	const op = "blob.Upload"
	bucket, err := gridfs.NewBucket(s.db)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	stream, err := bucket.OpenUploadStream(filename)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer stream.Close()

	if _, err := io.Copy(stream, r); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

// Download reads back a stored blob by its hex id.
func (s *Store) Download(fileID string) ([]byte, error) {
	const op = "blob.Download"
	bucket, err := gridfs.NewBucket(s.db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	objID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stream, err := bucket.OpenDownloadStream(objID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}
