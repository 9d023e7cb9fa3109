package service

import (
	"Anatome/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func storedVideo(id primitive.ObjectID) *mongo.Video {
	published := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	return &mongo.Video{
		ID:             id,
		UserID:         "u1",
		BusinessID:     "biz1",
		VideoURL:       "https://www.instagram.com/p/AAA/",
		S3URL:          "https://minio.local:9000/bucket/videos/biz1/AAA.mp4",
		S3ThumbnailURL: "https://minio.local:9000/bucket/thumbnails/biz1/AAA.jpg",
		Caption:        "hello",
		Likes:          10,
		PublishedAt:    &published,
		AnalysisStatus: "pending",
		CreatedAt:      time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestListByBusiness(t *testing.T) {
	id := primitive.NewObjectID()
	videoRepo := &fakeVideoRepo{
		videos: []*mongo.Video{storedVideo(id)},
		total:  12,
	}
	svc := &videoServiceImpl{videoRepo: videoRepo, storage: &fakeStorage{}}

	list, err := svc.ListByBusiness(context.Background(), "biz1", 0, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(12), list.Total)
	require.Len(t, list.Videos, 1)

	item := list.Videos[0]
	assert.Equal(t, id.Hex(), item.ID)
	assert.Equal(t, "hello", item.Caption)
	assert.Equal(t, "2025-06-01T12:00:00Z", item.PublishedAt)
	assert.Equal(t, "2025-06-02T00:00:00Z", item.CreatedAt)
}

func TestListByBusinessNormalizesPaging(t *testing.T) {
	videoRepo := &fakeVideoRepo{}
	svc := &videoServiceImpl{videoRepo: videoRepo, storage: &fakeStorage{}}

	list, err := svc.ListByBusiness(context.Background(), "biz1", -5, 9999)

	require.NoError(t, err)
	assert.Equal(t, 0, list.Skip)
	assert.Equal(t, 20, list.Limit)
}

func TestDeleteVideoRemovesRehostedMedia(t *testing.T) {
	id := primitive.NewObjectID()
	video := storedVideo(id)
	videoRepo := &fakeVideoRepo{byID: map[string]*mongo.Video{id.Hex(): video}}
	store := &fakeStorage{deleteOK: true}
	svc := &videoServiceImpl{videoRepo: videoRepo, storage: store}

	err := svc.DeleteVideo(context.Background(), id.Hex())

	require.NoError(t, err)
	assert.Contains(t, store.deleted, video.S3URL)
	assert.Contains(t, store.deleted, video.S3ThumbnailURL)
	assert.Equal(t, []string{id.Hex()}, videoRepo.deleted)
}

func TestDeleteVideoProceedsWhenStorageDeleteFails(t *testing.T) {
	id := primitive.NewObjectID()
	videoRepo := &fakeVideoRepo{byID: map[string]*mongo.Video{id.Hex(): storedVideo(id)}}
	store := &fakeStorage{deleteOK: false}
	svc := &videoServiceImpl{videoRepo: videoRepo, storage: store}

	err := svc.DeleteVideo(context.Background(), id.Hex())

	require.NoError(t, err, "record deletion must not be blocked by storage failures")
	assert.Len(t, videoRepo.deleted, 1)
}

func TestDeleteVideoNotFound(t *testing.T) {
	svc := &videoServiceImpl{videoRepo: &fakeVideoRepo{}, storage: &fakeStorage{}}

	err := svc.DeleteVideo(context.Background(), primitive.NewObjectID().Hex())

	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestDeleteVideoSkipsStorageWhenNoRehostedURL(t *testing.T) {
	id := primitive.NewObjectID()
	video := storedVideo(id)
	video.S3URL = ""
	video.S3ThumbnailURL = ""
	videoRepo := &fakeVideoRepo{byID: map[string]*mongo.Video{id.Hex(): video}}
	store := &fakeStorage{deleteOK: true}
	svc := &videoServiceImpl{videoRepo: videoRepo, storage: store}

	err := svc.DeleteVideo(context.Background(), id.Hex())

	require.NoError(t, err)
	assert.Empty(t, store.deleted)
}
