package database

import (
	"context"
	"errors"

	"github.com/xavierca1/georges-crm-sync/internal/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	UsersCollection        = "users"
	BankAccountsCollection = "bank_accounts"
)

type MongoUserRepository struct {
	Users        *mongo.Collection
	BankAccounts *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		Users:        db.Collection(UsersCollection),
		BankAccounts: db.Collection(BankAccountsCollection),
	}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	var doc mongoUser
	err := r.Users.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	count, err := r.CountBankAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toUser(doc.row(), count), nil
}

func (r *MongoUserRepository) CountBankAccounts(ctx context.Context, userID string) (int64, error) {
	return r.BankAccounts.CountDocuments(ctx, bson.D{{Key: "id_user", Value: userID}})
}
