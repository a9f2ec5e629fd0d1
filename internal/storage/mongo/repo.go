package mongorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/domain"
)

const collectionName = "search"

// document is the persisted layout: one document per searchId, dates in
// their textual form, _id purely store-internal.
type document struct {
	PK       string     `bson:"_id"`
	SearchID string     `bson:"searchId"`
	Search   searchData `bson:"search"`
	Count    int        `bson:"count"`
}

type searchData struct {
	HotelID  string `bson:"hotelId"`
	CheckIn  string `bson:"checkIn"`
	CheckOut string `bson:"checkOut"`
	Ages     []int  `bson:"ages"`
}

func toData(s domain.Search) searchData {
	return searchData{
		HotelID:  s.HotelID,
		CheckIn:  s.CheckIn.String(),
		CheckOut: s.CheckOut.String(),
		Ages:     append([]int{}, s.Ages...),
	}
}

func fromDocument(d document) (domain.Search, error) {
	checkIn, err := domain.ParseDate(d.Search.CheckIn)
	if err != nil {
		return domain.Search{}, fmt.Errorf("stored search %s: %v", d.SearchID, err)
	}
	checkOut, err := domain.ParseDate(d.Search.CheckOut)
	if err != nil {
		return domain.Search{}, fmt.Errorf("stored search %s: %v", d.SearchID, err)
	}
	return domain.Search{
		SearchID: d.SearchID,
		HotelID:  d.Search.HotelID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Ages:     d.Search.Ages,
		Count:    d.Count,
	}, nil
}

type Repo struct{ col *mongo.Collection }

func New(db *mongo.Database) *Repo { return &Repo{col: db.Collection(collectionName)} }

// EnsureIndexes creates the unique index on searchId. Uniqueness at the
// storage layer is what makes Save a true upsert instead of piling up
// duplicate documents for one id.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "searchId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save upserts the record under its searchId and returns the stored form.
// The _id is assigned once on first insert and kept across replacements.
func (r *Repo) Save(ctx context.Context, s domain.Search) (domain.Search, error) {
	update := bson.M{
		"$set": bson.M{
			"searchId": s.SearchID,
			"search":   toData(s),
			"count":    s.Count,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"searchId": s.SearchID}, update, options.Update().SetUpsert(true))
	observability.ObserveStore("save", err)
	if err != nil {
		return domain.Search{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return r.FindBySearchID(ctx, s.SearchID)
}

func (r *Repo) FindBySearchID(ctx context.Context, searchID string) (domain.Search, error) {
	var d document
	err := r.col.FindOne(ctx, bson.M{"searchId": searchID}).Decode(&d)
	observability.ObserveStore("find", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Search{}, fmt.Errorf("%w: search with id %s not found", domain.ErrNotFound, searchID)
	}
	if err != nil {
		return domain.Search{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return fromDocument(d)
}
