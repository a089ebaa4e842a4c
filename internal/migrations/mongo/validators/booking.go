package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"car_type",
			"num_days",
			"pickup",
			"dropoff",
			"payment_mode",
			"total_price",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"car_type": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			// Durations can legitimately be zero or negative; the schema only
			// pins the type.
			"num_days": bson.M{
				"bsonType": "int",
			},

			"pickup": bson.M{
				"bsonType": "string",
			},

			"dropoff": bson.M{
				"bsonType": "string",
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"payment_mode": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"total_price": bson.M{
				"bsonType": "int",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"cancelled_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
