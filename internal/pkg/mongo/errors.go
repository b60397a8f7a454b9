package mongo

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate 唯一索引冲突
var ErrDuplicate = errors.New("duplicate key")

func wrapWriteErr(err error, msg string) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.WithMessage(ErrDuplicate, msg)
	}
	return errors.Wrap(err, msg)
}

// parseID 非法的 hex 视为不存在
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
