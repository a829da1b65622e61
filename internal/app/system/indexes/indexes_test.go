package indexes

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestKeySig(t *testing.T) {
	got := keySig(bson.D{{Key: "read", Value: 1}, {Key: "created_at", Value: -1}})
	if got != "read:1, created_at:-1" {
		t.Errorf("keySig() = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	w := describe(mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_ratelimit_key"),
	})
	if w.name != "idx_ratelimit_key" || w.sig != "key:1" || !w.unique {
		t.Errorf("describe() = %+v", w)
	}

	plain := describe(mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}})
	if plain.name != "" || plain.unique {
		t.Errorf("describe() without options = %+v", plain)
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("boom"), false},
		{"message", errors.New("E11000 duplicate key error collection"), true},
		{"command error", mongo.CommandError{Code: 11000}, true},
		{"write exception", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyErr(tt.err); got != tt.want {
				t.Errorf("isDuplicateKeyErr() = %v, want %v", got, tt.want)
			}
		})
	}
}
