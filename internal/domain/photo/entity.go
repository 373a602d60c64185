package photo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comment is embedded in its photo's comment sequence. It has no identity
// of its own beyond array position; insertion order is display order.
type Comment struct {
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
}

// Comments is an append-only comment sequence stored as a jsonb array.
type Comments []Comment

// Value implements driver.Valuer for jsonb serialization
func (c Comments) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for jsonb deserialization
func (c *Comments) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("comments: cannot scan %T", value)
	}
	return json.Unmarshal(b, c)
}

// Photo represents a shared photo. Author fields are a denormalized snapshot
// taken at upload time and are not kept in sync with later profile edits.
type Photo struct {
	ID              uuid.UUID `db:"id" json:"id"`
	URL             string    `db:"url" json:"url"`
	Description     string    `db:"description" json:"description"`
	AuthorID        uuid.UUID `db:"author_id" json:"author_id"`
	AuthorName      string    `db:"author_name" json:"author_name"`
	AuthorAvatarURL string    `db:"author_avatar_url" json:"author_avatar_url"`
	LikeCount       int       `db:"like_count" json:"like_count"`
	Comments        Comments  `db:"comments" json:"comments"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Clone returns a deep copy, so a view's working set can be mutated
// without aliasing repository results.
func (p *Photo) Clone() *Photo {
	cp := *p
	cp.Comments = make(Comments, len(p.Comments))
	copy(cp.Comments, p.Comments)
	return &cp
}
