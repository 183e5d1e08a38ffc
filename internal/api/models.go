package api

import (
	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/service"
)

// ListCharactersQuery holds the pagination parameters of GET /list-characters.
type ListCharactersQuery struct {
	Limit int `mapstructure:"limit" validate:"min=0"`
	Skip  int `mapstructure:"skip"  validate:"min=0"`
}

// GetCharacterQuery holds the optional flags of GET /get-characters-id/{id}.
// Both flags are accepted for compatibility; house and role are always returned.
type GetCharacterQuery struct {
	IncludeHouse bool `mapstructure:"include_house"`
	IncludeRole  bool `mapstructure:"include_role"`
}

// FilterCharactersQuery holds the predicates of GET /filter-characters.
type FilterCharactersQuery struct {
	Name   string `mapstructure:"name"    validate:"max=100"`
	House  string `mapstructure:"house"   validate:"max=150"`
	Role   string `mapstructure:"role"    validate:"max=150"`
	AgeMin *int   `mapstructure:"age_min" validate:"omitempty,min=0,max=2147483647"`
	AgeMax *int   `mapstructure:"age_max" validate:"omitempty,min=0,max=2147483647"`
}

// SortCharactersRequest is the body of POST /characters-sort.
// Empty values select the defaults.
type SortCharactersRequest struct {
	SortBy    string `json:"sort_by"    validate:"omitempty,oneof=name age house"`
	SortOrder string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// CreateCharacterRequest is the body of POST /add/create-new-characters.
type CreateCharacterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	House    string `json:"house"    validate:"required,max=150"`
	Animal   string `json:"animal"   validate:"max=150"`
	Symbol   string `json:"symbol"   validate:"max=150"`
	Nickname string `json:"nickname" validate:"max=150"`
	Role     string `json:"role"     validate:"required,max=150"`
	Age      *int   `json:"age"      validate:"required,min=0,max=2147483647"`
	Death    *int   `json:"death"    validate:"omitempty,min=0,max=2147483647"`
	Strength string `json:"strength"`
}

// Character converts the request into a domain character without an ID.
func (r CreateCharacterRequest) Character() domain.Character {
	c := domain.Character{
		Name:     r.Name,
		House:    r.House,
		Animal:   r.Animal,
		Symbol:   r.Symbol,
		Nickname: r.Nickname,
		Role:     r.Role,
		Death:    r.Death,
		Strength: r.Strength,
	}
	if r.Age != nil {
		c.Age = *r.Age
	}
	return c
}

// CharacterListResponse is the paginated listing envelope.
type CharacterListResponse struct {
	Total int                `json:"total"`
	Skip  int                `json:"skip"`
	Limit int                `json:"limit"`
	Data  []domain.Character `json:"data"`
}

// NewCharacterListResponse converts a service page into its response.
func NewCharacterListResponse(page *service.CharacterPage) CharacterListResponse {
	data := page.Data
	if data == nil {
		data = []domain.Character{}
	}
	return CharacterListResponse{Total: page.Total, Skip: page.Skip, Limit: page.Limit, Data: data}
}

// CharacterCollectionResponse is the envelope of filter and sort results.
type CharacterCollectionResponse struct {
	Total int                `json:"total"`
	Data  []domain.Character `json:"data"`
}

// NewCharacterCollectionResponse wraps characters, never encoding data as null.
func NewCharacterCollectionResponse(characters []domain.Character) CharacterCollectionResponse {
	if characters == nil {
		characters = []domain.Character{}
	}
	return CharacterCollectionResponse{Total: len(characters), Data: characters}
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name            string `json:"name"             validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email,max=100"`
	Password        string `json:"password"         validate:"required,min=8,max=72,password_policy"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest defines the payload for the token endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
