package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/userdesk-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// document is the stored shape of a user record.
type document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Label      bson.RawValue      `bson:"id"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Age        bson.RawValue      `bson:"age"`
	Profession string             `bson:"profession"`
	Summary    string             `bson:"summary"`
	GoogleID   string             `bson:"googleId,omitempty"`
	Avatar     string             `bson:"avatar,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// UserRepository stores user records in a MongoDB collection.
type UserRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials the deployment at uri and checks it is reachable.
func Connect(ctx context.Context, uri, database, collection string) (*UserRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach mongo: %w", err)
	}

	return NewUserRepository(client, client.Database(database).Collection(collection)), nil
}

func NewUserRepository(client *mongo.Client, coll *mongo.Collection) *UserRepository {
	return &UserRepository{
		client: client,
		coll:   coll,
	}
}

func parseID(storeID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", model.ErrInvalidStoreID, storeID)
	}
	return id, nil
}

func (r *UserRepository) Insert(ctx context.Context, user model.User) (string, error) {
	doc, err := toBSON(user)
	if err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	doc = append(bson.D{{Key: "_id", Value: id}}, doc...)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id.Hex(), nil
}

func (r *UserRepository) FindOne(ctx context.Context, storeID string) (model.User, error) {
	id, err := parseID(storeID)
	if err != nil {
		return model.User{}, err
	}

	var doc document
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return fromDocument(doc)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]model.User, 0)
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}

		user, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Replace sets the tracked fields in place. An empty label unsets "id".
func (r *UserRepository) Replace(ctx context.Context, storeID string, profile model.Profile) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	update, err := replaceUpdate(profile)
	if err != nil {
		return false, err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, fmt.Errorf("failed to replace user: %w", err)
	}

	return res.MatchedCount > 0, nil
}

func (r *UserRepository) Remove(ctx context.Context, storeID string) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return res.DeletedCount > 0, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *UserRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return r.client.Disconnect(ctx)
}

func profileFields(p model.Profile) bson.D {
	return bson.D{
		{Key: "name", Value: p.Name},
		{Key: "email", Value: p.Email},
		{Key: "age", Value: p.Age.Ptr()},
		{Key: "profession", Value: p.Profession},
		{Key: "summary", Value: p.Summary},
	}
}

func toBSON(user model.User) (bson.D, error) {
	doc := bson.D{}

	if len(user.Label) > 0 {
		label, err := labelToBSON(user.Label)
		if err != nil {
			return nil, err
		}
		doc = append(doc, bson.E{Key: "id", Value: label})
	}

	doc = append(doc, profileFields(user.Profile)...)

	if user.GoogleID != "" {
		doc = append(doc, bson.E{Key: "googleId", Value: user.GoogleID})
	}
	if user.Avatar != "" {
		doc = append(doc, bson.E{Key: "avatar", Value: user.Avatar})
	}

	return append(doc, bson.E{Key: "createdAt", Value: user.CreatedAt}), nil
}

func replaceUpdate(p model.Profile) (bson.D, error) {
	set := profileFields(p)

	if len(p.Label) == 0 {
		return bson.D{
			{Key: "$set", Value: set},
			{Key: "$unset", Value: bson.D{{Key: "id", Value: ""}}},
		}, nil
	}

	label, err := labelToBSON(p.Label)
	if err != nil {
		return nil, err
	}
	set = append(bson.D{{Key: "id", Value: label}}, set...)

	return bson.D{{Key: "$set", Value: set}}, nil
}

func fromDocument(doc document) (model.User, error) {
	label, err := labelFromBSON(doc.Label)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to decode user %s: %w", doc.ID.Hex(), err)
	}

	return model.User{
		Profile: model.Profile{
			Label:      label,
			Name:       doc.Name,
			Email:      doc.Email,
			Age:        ageFromBSON(doc.Age),
			Profession: doc.Profession,
			Summary:    doc.Summary,
		},
		StoreID:   doc.ID.Hex(),
		GoogleID:  doc.GoogleID,
		Avatar:    doc.Avatar,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// ageFromBSON accepts whatever other writers of the collection may have
// stored under "age". Integral numbers are valid ages, numeric strings go
// through model.ParseAge and anything else is the sentinel.
func ageFromBSON(v bson.RawValue) model.Age {
	if i, ok := v.Int32OK(); ok {
		return model.AgeOf(int(i))
	}
	if i, ok := v.Int64OK(); ok {
		return model.AgeOf(int(i))
	}
	if f, ok := v.DoubleOK(); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return model.NaN
		}
		return model.AgeOf(int(f))
	}
	if s, ok := v.StringValueOK(); ok {
		return model.ParseAge(s)
	}
	return model.NaN
}
