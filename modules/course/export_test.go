package course

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (in Input) SetDoc(now time.Time) bson.D { return in.setDoc(now) }
