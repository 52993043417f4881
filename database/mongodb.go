package database

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var DefaultMongoClient *mongo.Client

// NewMongoClient connects to the given URI with hex-string object IDs, which
// keeps the user repo free of ObjectID plumbing.
func NewMongoClient(uri string) (*mongo.Client, error) {
	return mongo.Connect(options.Client().
		ApplyURI(uri).
		SetBSONOptions(
			&options.BSONOptions{
				ObjectIDAsHexString: true,
			},
		))
}

func init() {
	godotenv.Load()
	client, err := NewMongoClient(os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Println("Failed to connect to MongoDB:", err)
	}
	DefaultMongoClient = client
}
