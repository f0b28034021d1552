// Package mongo implements the repository contracts on MongoDB collections
// with one collection per entity.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/database"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository"
)

// New builds the three stores on db. Close disconnects client.
func New(client *mongo.Client, db *mongo.Database) repository.Store {
	return repository.Store{
		Accounts:     &AccountStore{coll: db.Collection(database.UsersCollection)},
		Performance:  &PerformanceStore{coll: db.Collection(database.PerformancesCollection)},
		Applications: &ApplicationStore{coll: db.Collection(database.ApplicationsCollection)},
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: client.Disconnect,
	}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	Role         string             `bson:"role"`
	AgencyName   string             `bson:"agencyName"`
	AgentType    string             `bson:"agentType"`
	Phone        string             `bson:"phone,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty"`
	Active       bool               `bson:"active"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d userDoc) toModel() model.User {
	return model.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         model.Role(d.Role),
		AgencyName:   d.AgencyName,
		AgentType:    model.AgentType(d.AgentType),
		Phone:        d.Phone,
		ProfileImage: d.ProfileImage,
		Active:       d.Active,
		CreatedAt:    d.CreatedAt,
	}
}

type AccountStore struct {
	coll *mongo.Collection
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, "User not found")
	}
	u := doc.toModel()
	return &u, nil
}

func (s *AccountStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Password:     user.PasswordHash,
		Role:         string(user.Role),
		AgencyName:   user.AgencyName,
		AgentType:    string(user.AgentType),
		Phone:        user.Phone,
		ProfileImage: user.ProfileImage,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u := doc.toModel()
	return &u, nil
}

func (s *AccountStore) UpdateProfile(ctx context.Context, id string, fields model.ProfileUpdate) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}

	set := bson.M{}
	if fields.FirstName != nil {
		set["firstName"] = *fields.FirstName
	}
	if fields.LastName != nil {
		set["lastName"] = *fields.LastName
	}
	if fields.Phone != nil {
		set["phone"] = *fields.Phone
	}
	if fields.AgencyName != nil {
		set["agencyName"] = *fields.AgencyName
	}
	if fields.AgentType != nil {
		set["agentType"] = string(*fields.AgentType)
	}
	if fields.ProfileImage != nil && *fields.ProfileImage != "" {
		set["profileImage"] = *fields.ProfileImage
	}
	if len(set) == 0 {
		return s.findOne(ctx, bson.M{"_id": oid})
	}

	var doc userDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	u := doc.toModel()
	return &u, nil
}

func (s *AccountStore) ListAll(ctx context.Context) ([]model.User, error) {
	cur, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

type performanceDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId"`
	Date            time.Time          `bson:"date"`
	Calls           int                `bson:"calls"`
	Appointments    int                `bson:"appointments"`
	Sits            int                `bson:"sits"`
	Sales           int                `bson:"sales"`
	ALP             float64            `bson:"alp"`
	Refs            int                `bson:"refs"`
	RefAppointments int                `bson:"refAppointments"`
	RefSales        int                `bson:"refSales"`
	RefALP          float64            `bson:"refAlp"`
	Notes           string             `bson:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d performanceDoc) toModel() model.PerformanceRecord {
	return model.PerformanceRecord{
		ID:     d.ID.Hex(),
		UserID: d.UserID.Hex(),
		Date:   d.Date.Local(),
		Metrics: model.Metrics{
			Calls:           d.Calls,
			Appointments:    d.Appointments,
			Sits:            d.Sits,
			Sales:           d.Sales,
			ALP:             d.ALP,
			Refs:            d.Refs,
			RefAppointments: d.RefAppointments,
			RefSales:        d.RefSales,
			RefALP:          d.RefALP,
		},
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}
}

type PerformanceStore struct {
	coll *mongo.Collection
}

func (s *PerformanceStore) Insert(ctx context.Context, r *model.PerformanceRecord) (*model.PerformanceRecord, error) {
	userID, err := primitive.ObjectIDFromHex(r.UserID)
	if err != nil {
		return nil, apperrors.Validation("invalid user id")
	}
	doc := performanceDoc{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Date:            r.Date,
		Calls:           r.Calls,
		Appointments:    r.Appointments,
		Sits:            r.Sits,
		Sales:           r.Sales,
		ALP:             r.ALP,
		Refs:            r.Refs,
		RefAppointments: r.RefAppointments,
		RefSales:        r.RefSales,
		RefALP:          r.RefALP,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert performance: %w", err)
	}
	rec := doc.toModel()
	return &rec, nil
}

func (s *PerformanceStore) QueryByUser(ctx context.Context, userID string, window *model.Window) ([]model.PerformanceRecord, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []model.PerformanceRecord{}, nil
	}
	filter := bson.M{"userId": oid}
	if window != nil {
		filter["date"] = bson.M{"$gte": window.Start, "$lte": window.End}
	}
	return s.find(ctx, filter, bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
}

func (s *PerformanceStore) QueryAll(ctx context.Context, window model.Window) ([]model.PerformanceRecord, error) {
	filter := bson.M{"date": bson.M{"$gte": window.Start, "$lte": window.End}}
	return s.find(ctx, filter, bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *PerformanceStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]model.PerformanceRecord, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find performances: %w", err)
	}
	var docs []performanceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode performances: %w", err)
	}

	records := make([]model.PerformanceRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.toModel())
	}
	return records, nil
}

type applicationDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone"`
	Location   string             `bson:"location"`
	Experience string             `bson:"experience"`
	Licenses   []string           `bson:"licenses"`
	Message    string             `bson:"message,omitempty"`
	ResumeURL  string             `bson:"resumeUrl,omitempty"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d applicationDoc) toModel() model.Application {
	licenses := d.Licenses
	if licenses == nil {
		licenses = []string{}
	}
	return model.Application{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Phone:      d.Phone,
		Location:   d.Location,
		Experience: d.Experience,
		Licenses:   licenses,
		Message:    d.Message,
		ResumeURL:  d.ResumeURL,
		Status:     model.ApplicationStatus(d.Status),
		CreatedAt:  d.CreatedAt,
	}
}

type ApplicationStore struct {
	coll *mongo.Collection
}

func (s *ApplicationStore) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	doc := applicationDoc{
		ID:         primitive.NewObjectID(),
		FirstName:  app.FirstName,
		LastName:   app.LastName,
		Email:      app.Email,
		Phone:      app.Phone,
		Location:   app.Location,
		Experience: app.Experience,
		Licenses:   app.Licenses,
		Message:    app.Message,
		ResumeURL:  app.ResumeURL,
		Status:     string(app.Status),
		CreatedAt:  app.CreatedAt,
	}
	if doc.Licenses == nil {
		doc.Licenses = []string{}
	}
	if doc.Status == "" {
		doc.Status = string(model.StatusPending)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	a := doc.toModel()
	return &a, nil
}

func (s *ApplicationStore) ListAll(ctx context.Context) ([]model.Application, error) {
	cur, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	var docs []applicationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	apps := make([]model.Application, 0, len(docs))
	for _, d := range docs {
		apps = append(apps, d.toModel())
	}
	return apps, nil
}

func (s *ApplicationStore) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Application not found")
	}
	var doc applicationDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "Application not found")
	}
	a := doc.toModel()
	return &a, nil
}

func notFound(err error, message string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound(message)
	}
	return err
}
