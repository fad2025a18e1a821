package db

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func InitMentorDB(ctx context.Context, mongo *mongo.Client, tenant string) error {
	if err := odm.EnsureIndexes[ChildModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[ConcernModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[AssignmentModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[SessionModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[MemoryModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[CulturalStoryModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[KnowledgeModel](ctx, mongo, tenant); err != nil {
		return err
	}

	if err := odm.EnsureIndexes[ConversationModel](ctx, mongo, tenant); err != nil {
		return err
	}

	return odm.EnsureIndexes[MessageModel](ctx, mongo, tenant)
}
