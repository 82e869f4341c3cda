package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	guideModel "gameguide-backend/internal/domains/guide/model"
)

var adminPathPattern = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)

var reservedAdminPaths = map[string]struct{}{
	"admin":  {},
	"login":  {},
	"api":    {},
	"public": {},
	"static": {},
	"assets": {},
}

// validAdminPath rejects reserved segments and anything that does not look like a path slug.
var validAdminPath = validation.By(func(value interface{}) error {
	value, isNil := validation.Indirect(value)
	p, _ := value.(string)
	if isNil || p == "" {
		return nil
	}
	if !adminPathPattern.MatchString(p) {
		return errors.New("may contain only letters, digits, '_' or '-' and must not start with a digit")
	}
	if _, reserved := reservedAdminPaths[strings.ToLower(p)]; reserved {
		return errors.New("is reserved")
	}
	return nil
})

// =====================================================
// LOGIN
// =====================================================

type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AdminPath string `json:"adminPath"`
}

// Complete reports whether every credential field was supplied.
func (r LoginRequest) Complete() bool {
	return strings.TrimSpace(r.Username) != "" && r.Password != "" && strings.TrimSpace(r.AdminPath) != ""
}

type LoginResult struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// =====================================================
// CONFIG
// =====================================================

// ConfigUpdateRequest is a partial update: nil fields are left untouched.
type ConfigUpdateRequest struct {
	Username  *string `json:"username"`
	AdminPath *string `json:"adminPath"`
	Password  *string `json:"password"`

	EnableAIGeneration *bool   `json:"enableAiGeneration"`
	AnthropicAPIKey    *string `json:"anthropicApiKey"`
	GeminiAPIKey       *string `json:"geminiApiKey"`

	SiteName *string `json:"siteName"`

	AmazonTag      *string `json:"amazonTag"`
	ShopeeID       *string `json:"shopeeId"`
	MagaluID       *string `json:"magaluId"`
	AliexpressID   *string `json:"aliexpressId"`
	MercadoLivreID *string `json:"mercadolivreId"`
	AdSensePubID   *string `json:"adSensePubId"`
	AdSenseSlotID  *string `json:"adSenseSlotId"`
}

func (r ConfigUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AdminPath,
			validation.NilOrNotEmpty.Error("adminPath cannot be empty"),
			validation.Length(5, 50),
			validAdminPath,
		),
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Length(6, 200)),
		validation.Field(&r.SiteName, validation.Length(0, 120)),
	)
}

type ConfigResponse struct {
	Success bool    `json:"success"`
	Config  *Config `json:"config"`
}

// =====================================================
// POSTS
// =====================================================

const (
	ContentFormatHTML     = "html"
	ContentFormatMarkdown = "markdown"
)

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"imageUrl"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Status        string   `json:"status"`
	ContentFormat string   `json:"contentFormat"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.ImageURL, is.URL, validation.Match(regexp.MustCompile(`^https?://`)).Error("must be an http or https URL")),
		validation.Field(&r.Category, validation.By(func(value interface{}) error {
			c, _ := value.(string)
			if c == "" || guideModel.Category(c).Valid() {
				return nil
			}
			return errors.New("must be one of codes, tutorial, tierlist, build")
		})),
		validation.Field(&r.Difficulty, validation.By(func(value interface{}) error {
			d, _ := value.(string)
			if d == "" {
				return nil
			}
			if _, ok := guideModel.ParseDifficulty(d); !ok {
				return errors.New("must be easy, medium or hard")
			}
			return nil
		})),
		validation.Field(&r.Status, validation.In(guideModel.StatusPublished, guideModel.StatusDraft)),
		validation.Field(&r.ContentFormat, validation.In(ContentFormatHTML, ContentFormatMarkdown)),
	)
}

type PostResponse struct {
	Success bool              `json:"success"`
	Post    *guideModel.Guide `json:"post"`
}

type PostListResponse struct {
	Success bool                 `json:"success"`
	Posts   []guideModel.Summary `json:"posts"`
}

type StatsResponse struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats"`
}
