package store

import (
	"context"
	"errors"
	"slices"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/mentor-boot/db"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore reads and writes mentor records in the tenant database.
type MongoStore struct {
	mongo  *mongo.Client
	tenant string
}

func NewMongoStore(mongo *mongo.Client, tenant string) *MongoStore {
	return &MongoStore{mongo: mongo, tenant: tenant}
}

func (s *MongoStore) GetChildProfile(ctx context.Context, childID string) (*db.ChildProfile, error) {
	child, err := async.Await(odm.CollectionOf[db.ChildModel](s.mongo, s.tenant).FindOneByID(ctx, childID))
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if child == nil {
		return nil, NotFound("child", childID)
	}

	concerns, err := async.Await(odm.CollectionOf[db.ConcernModel](s.mongo, s.tenant).Find(ctx,
		bson.M{"childId": childID, "status": bson.M{"$ne": db.ConcernResolved}},
		bson.D{{Key: "identifiedOn", Value: -1}}, 0, 0))
	if err != nil {
		return nil, err
	}

	assignments, err := async.Await(odm.CollectionOf[db.AssignmentModel](s.mongo, s.tenant).Find(ctx,
		bson.M{"childId": childID, "isActive": true}, nil, 0, 0))
	if err != nil {
		return nil, err
	}

	return &db.ChildProfile{
		Child:             *child,
		ActiveConcerns:    concerns,
		ActiveAssignments: assignments,
	}, nil
}

func (s *MongoStore) RecentSessions(ctx context.Context, childID string, limit int) ([]db.SessionModel, error) {
	return async.Await(odm.CollectionOf[db.SessionModel](s.mongo, s.tenant).Find(ctx,
		bson.M{"childId": childID},
		bson.D{{Key: "createdOn", Value: -1}}, int64(limit), 0))
}

func (s *MongoStore) GetSession(ctx context.Context, sessionID string) (*db.SessionModel, error) {
	session, err := async.Await(odm.CollectionOf[db.SessionModel](s.mongo, s.tenant).FindOneByID(ctx, sessionID))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return session, err
}

func (s *MongoStore) TopMemories(ctx context.Context, childID string, limit int) ([]db.MemoryModel, error) {
	return async.Await(odm.CollectionOf[db.MemoryModel](s.mongo, s.tenant).Find(ctx,
		bson.M{"childId": childID},
		bson.D{{Key: "importance", Value: -1}, {Key: "createdOn", Value: -1}}, int64(limit), 0))
}

func (s *MongoStore) FindStories(ctx context.Context, q StoryQuery, limit int) ([]db.CulturalStoryModel, error) {
	return async.Await(odm.CollectionOf[db.CulturalStoryModel](s.mongo, s.tenant).Find(ctx,
		q.Filter(), bson.D{{Key: "title", Value: 1}}, int64(limit), 0))
}

func (s *MongoStore) FindKnowledge(ctx context.Context, q KnowledgeQuery, limit int) ([]db.KnowledgeModel, error) {
	return async.Await(odm.CollectionOf[db.KnowledgeModel](s.mongo, s.tenant).Find(ctx,
		q.Filter(), bson.D{{Key: "title", Value: 1}}, int64(limit), 0))
}

func (s *MongoStore) ConversationMessages(ctx context.Context, conversationID string, limit int) ([]db.MessageModel, error) {
	if limit < 0 {
		limit = 0
	}

	// newest first so the limit keeps the tail of the log, then flip to insertion order
	messages, err := async.Await(odm.CollectionOf[db.MessageModel](s.mongo, s.tenant).Find(ctx,
		bson.M{"conversationId": conversationID},
		bson.D{{Key: "timestamp", Value: -1}, {Key: "sequence", Value: -1}}, int64(limit), 0))
	if err != nil {
		return nil, err
	}

	slices.Reverse(messages)
	return messages, nil
}

func (s *MongoStore) GetConversation(ctx context.Context, conversationID string) (*db.ConversationModel, error) {
	conversation, err := async.Await(odm.CollectionOf[db.ConversationModel](s.mongo, s.tenant).FindOneByID(ctx, conversationID))
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if conversation == nil {
		return nil, NotFound("conversation", conversationID)
	}
	return conversation, nil
}

func (s *MongoStore) CreateConversation(ctx context.Context, conversation db.ConversationModel) error {
	_, err := async.Await(odm.CollectionOf[db.ConversationModel](s.mongo, s.tenant).Save(ctx, conversation))
	return err
}

func (s *MongoStore) AppendMessage(ctx context.Context, message db.MessageModel) error {
	_, err := async.Await(odm.CollectionOf[db.MessageModel](s.mongo, s.tenant).Save(ctx, message))
	return err
}

func (s *MongoStore) SaveMemory(ctx context.Context, memory db.MemoryModel) error {
	_, err := async.Await(odm.CollectionOf[db.MemoryModel](s.mongo, s.tenant).Save(ctx, memory))
	return err
}
