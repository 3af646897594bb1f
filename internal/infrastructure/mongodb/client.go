// Package mongodb implementa los puertos de persistencia sobre MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jmoralesv/taller-api/pkg/config"
)

// Connect abre la conexión a MongoDB y verifica con un ping.
func Connect(ctx context.Context, cfg config.DBConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar a mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping a mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices que el modelo asume: nombres únicos en las
// colecciones referenciadas por nombre y búsqueda de factura por reparación.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	nameKey := bson.D{{Key: "name", Value: 1}}

	for _, col := range []string{"clients", "employees", "inventories"} {
		_, err := db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    nameKey,
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("índice único de name en %s: %w", col, err)
		}
	}
	_, err := db.Collection("bills").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id_repair", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("índice de id_repair en bills: %w", err)
	}
	return nil
}
