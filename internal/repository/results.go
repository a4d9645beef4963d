package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"herohome/internal/model"
)

func insertResult(res *mongo.InsertOneResult) *model.InsertResult {
	return &model.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) *model.UpdateResult {
	return &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteResult(res *mongo.DeleteResult) *model.DeleteResult {
	return &model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
