package course

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/courseapi/pkg/slug"
)

// Course is the stored document.
type Course struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Slug        string        `bson:"slug" json:"slug"`
	Description string        `bson:"description" json:"description"`
	Instructor  string        `bson:"instructor" json:"instructor"`
	Duration    string        `bson:"duration" json:"duration"`
	Price       float64       `bson:"price" json:"price"`
	Tags        []string      `bson:"tags" json:"tags"`
	Published   bool          `bson:"published" json:"published"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// Input holds client supplied fields. Nil pointers and a nil Tags slice mean
// "not supplied", which lets the same type drive creates and partial updates.
type Input struct {
	Title       *string  `json:"title" form:"title"`
	Description *string  `json:"description" form:"description"`
	Instructor  *string  `json:"instructor" form:"instructor"`
	Duration    *string  `json:"duration" form:"duration"`
	Price       *float64 `json:"price" form:"price"`
	Tags        []string `json:"tags" form:"tags"`
	Published   *bool    `json:"published" form:"published"`
}

// New builds a course from in, stamped with now.
func New(in Input, now time.Time) Course {
	c := Course{
		ID:        bson.NewObjectID(),
		Tags:      []string{},
		CreatedAt: now,
	}
	c.Apply(in, now)
	return c
}

// Apply copies the supplied fields of in onto c and refreshes the slug when
// the title changes.
func (c *Course) Apply(in Input, now time.Time) {
	if in.Title != nil {
		c.Title = *in.Title
		c.Slug = slug.Make(c.Title)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Instructor != nil {
		c.Instructor = *in.Instructor
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.Tags != nil {
		c.Tags = in.Tags
	}
	if in.Published != nil {
		c.Published = *in.Published
	}
	c.UpdatedAt = now
}

// setDoc renders the supplied fields of in as a $set document.
func (in Input) setDoc(now time.Time) bson.D {
	doc := bson.D{}
	if in.Title != nil {
		doc = append(doc, bson.E{Key: "title", Value: *in.Title}, bson.E{Key: "slug", Value: slug.Make(*in.Title)})
	}
	if in.Description != nil {
		doc = append(doc, bson.E{Key: "description", Value: *in.Description})
	}
	if in.Instructor != nil {
		doc = append(doc, bson.E{Key: "instructor", Value: *in.Instructor})
	}
	if in.Duration != nil {
		doc = append(doc, bson.E{Key: "duration", Value: *in.Duration})
	}
	if in.Price != nil {
		doc = append(doc, bson.E{Key: "price", Value: *in.Price})
	}
	if in.Tags != nil {
		doc = append(doc, bson.E{Key: "tags", Value: in.Tags})
	}
	if in.Published != nil {
		doc = append(doc, bson.E{Key: "published", Value: *in.Published})
	}
	return append(doc, bson.E{Key: "updated_at", Value: now})
}

// ParseID converts a hex string into an ObjectID, returning ErrInvalidID
// for anything else.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}
	return oid, nil
}
