package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VideoRepo interface {
	Insert(ctx context.Context, video *Video) (*Video, error)
	ExistsBySourceURL(ctx context.Context, userID string, videoURL string) (bool, error)
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error)
	FindByBusiness(ctx context.Context, businessID string, skip, limit int64) ([]*Video, int64, error)
	GetById(ctx context.Context, id string) (*Video, error)
	DeleteById(ctx context.Context, id string) (bool, error)
}

type videoRepoImpl struct {
	col *mongo.Collection
}

func NewVideoRepo(db *mongo.Database) VideoRepo {
	return &videoRepoImpl{
		col: db.Collection("videos"),
	}
}

// Insert 写入视频记录并回填系统 ID 与时间戳
func (s *videoRepoImpl) Insert(ctx context.Context, video *Video) (*Video, error) {
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	result, err := s.col.InsertOne(ctx, video)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		video.ID = oid
	}
	return video, nil
}

// ExistsBySourceURL 按 (用户, 原始链接) 查重
func (s *videoRepoImpl) ExistsBySourceURL(ctx context.Context, userID string, videoURL string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"video_url": videoURL,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountCreatedSince 统计用户自 since 起创建的视频数，配额检查用
func (s *videoRepoImpl) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	})
}

// FindByBusiness 按业务分页查询，按创建时间倒序
func (s *videoRepoImpl) FindByBusiness(ctx context.Context, businessID string, skip, limit int64) ([]*Video, int64, error) {
	filter := bson.M{"business_id": businessID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var videos []*Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// GetById 按系统 ID 精确查询，未找到返回 nil
func (s *videoRepoImpl) GetById(ctx context.Context, id string) (*Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var video Video
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

// DeleteById 按系统 ID 删除，返回是否确实删除了记录
func (s *videoRepoImpl) DeleteById(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
