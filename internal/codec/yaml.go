package codec

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"socialfeed/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlSnapshot mirrors Snapshot with snake_case keys and plain dates
type yamlSnapshot struct {
	ExportedAt time.Time     `yaml:"exported_at"`
	Users      []yamlUser    `yaml:"users"`
	Posts      []yamlPost    `yaml:"posts"`
	Comments   []yamlComment `yaml:"comments"`
}

type yamlUser struct {
	ID          int64  `yaml:"id"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Email       string `yaml:"email"`
	DateOfBirth string `yaml:"date_of_birth,omitempty"`
	Telephone   string `yaml:"telephone,omitempty"`
	IsActive    bool   `yaml:"is_active"`
}

type yamlPost struct {
	ID          int64     `yaml:"id"`
	UserID      int64     `yaml:"user_id"`
	Description string    `yaml:"description"`
	Image       string    `yaml:"image,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

type yamlComment struct {
	ID          int64     `yaml:"id"`
	PostID      int64     `yaml:"post_id"`
	UserID      int64     `yaml:"user_id"`
	Description string    `yaml:"description"`
	CreatedAt   time.Time `yaml:"created_at"`
	IsActive    bool      `yaml:"is_active"`
}

const yamlDateLayout = "2006-01-02"

// Parse imports a snapshot from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*Snapshot, error) {
	var ys yamlSnapshot
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&ys); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	snap := &Snapshot{ExportedAt: ys.ExportedAt}
	for _, u := range ys.Users {
		user := &domain.User{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Telephone: u.Telephone,
			IsActive:  u.IsActive,
		}
		if u.DateOfBirth != "" {
			dob, err := time.Parse(yamlDateLayout, u.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("user %d: invalid date_of_birth %q: %w", u.ID, u.DateOfBirth, err)
			}
			user.DateOfBirth = dob
		}
		snap.Users = append(snap.Users, user)
	}
	for _, p := range ys.Posts {
		snap.Posts = append(snap.Posts, &domain.Post{
			ID:          p.ID,
			UserID:      p.UserID,
			Description: p.Description,
			Image:       p.Image,
			CreatedAt:   p.CreatedAt.UTC(),
		})
	}
	for _, cm := range ys.Comments {
		snap.Comments = append(snap.Comments, &domain.Comment{
			ID:          cm.ID,
			PostID:      cm.PostID,
			UserID:      cm.UserID,
			Description: cm.Description,
			CreatedAt:   cm.CreatedAt.UTC(),
			IsActive:    cm.IsActive,
		})
	}

	return snap, nil
}

// Export writes a snapshot as YAML
func (c *YAMLCodec) Export(snap *Snapshot, w io.Writer) error {
	ys := yamlSnapshot{
		ExportedAt: snap.ExportedAt,
		Users:      make([]yamlUser, 0, len(snap.Users)),
		Posts:      make([]yamlPost, 0, len(snap.Posts)),
		Comments:   make([]yamlComment, 0, len(snap.Comments)),
	}

	for _, u := range snap.Users {
		yu := yamlUser{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Telephone: u.Telephone,
			IsActive:  u.IsActive,
		}
		if !u.DateOfBirth.IsZero() {
			yu.DateOfBirth = u.DateOfBirth.Format(yamlDateLayout)
		}
		ys.Users = append(ys.Users, yu)
	}
	for _, p := range snap.Posts {
		ys.Posts = append(ys.Posts, yamlPost{
			ID:          p.ID,
			UserID:      p.UserID,
			Description: p.Description,
			Image:       p.Image,
			CreatedAt:   p.CreatedAt,
		})
	}
	for _, cm := range snap.Comments {
		ys.Comments = append(ys.Comments, yamlComment{
			ID:          cm.ID,
			PostID:      cm.PostID,
			UserID:      cm.UserID,
			Description: cm.Description,
			CreatedAt:   cm.CreatedAt,
			IsActive:    cm.IsActive,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ys); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
