package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/config"
	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database(config.AppConfig.MongoDatabase).Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// appointmentDoc is the wire form of an appointment. The _id is the canonical
// identifier; date is stored as a BSON datetime.
type appointmentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Date          primitive.DateTime `bson:"date"`
	ServiceID     string             `bson:"serviceId"`
	CustomerName  string             `bson:"customerName"`
	CustomerPhone string             `bson:"customerPhone,omitempty"`
	CustomerEmail string             `bson:"customerEmail,omitempty"`
	Message       string             `bson:"message,omitempty"`
}

func (d appointmentDoc) toModel() models.Appointment {
	return models.Appointment{
		ID:            d.ID.Hex(),
		Date:          d.Date.Time(),
		ServiceID:     d.ServiceID,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		CustomerEmail: d.CustomerEmail,
		Message:       d.Message,
	}
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "customerEmail", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetAll retrieves every appointment, oldest first.
func (r *MongoAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var doc appointmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appts, nil
}

// Create inserts a new appointment document. The store assigns the canonical
// id; whatever id the caller put on the model is discarded.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := appointmentDoc{
		Date:          primitive.NewDateTimeFromTime(appt.Date),
		ServiceID:     appt.ServiceID,
		CustomerName:  appt.CustomerName,
		CustomerPhone: appt.CustomerPhone,
		CustomerEmail: appt.CustomerEmail,
		Message:       appt.Message,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create appointment: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	appt.ID = oid.Hex()
	return appt.ID, nil
}

// Delete removes an appointment document by its id.
func (r *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete appointment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Watch opens a change stream on the appointments collection. Every write
// event triggers onChange; the consumer is expected to reload the whole
// collection rather than merge deltas.
func (r *MongoAppointmentRepo) Watch(ctx context.Context, onChange func(), onError func(error)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := r.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open change stream: %w", err)
	}

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			onChange()
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			onError(err)
		}
	}()

	return cancel, nil
}
