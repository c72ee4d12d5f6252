package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// sqlDateTime is the space separated layout accepted alongside RFC 3339.
const sqlDateTime = "2006-01-02 15:04:05"

const maxImageBytes = 5 << 20

var errUnknownQueryParam = errors.New("unknown query parameter")

// Timestamp is a JSON date that accepts RFC 3339 or "YYYY-MM-DD HH:MM:SS" (UTC).
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := parseDate(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(sqlDateTime, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// bindJSON decodes the body into obj, rejecting unknown fields and trailing
// data, then runs the binding validator over it.
func bindJSON(c *gin.Context, obj any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return binding.Validator.ValidateStruct(obj)
}

// bindQuery binds the query string into obj after checking that every key
// is in allowed.
func bindQuery(c *gin.Context, obj any, allowed ...string) error {
	for key := range c.Request.URL.Query() {
		if !contains(allowed, key) {
			return fmt.Errorf("%w: %s", errUnknownQueryParam, key)
		}
	}
	return c.ShouldBindQuery(obj)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// readImage reads an image upload body. ok is false when the body exceeds maxImageBytes.
func readImage(c *gin.Context) (data []byte, ok bool, err error) {
	data, err = io.ReadAll(io.LimitReader(c.Request.Body, maxImageBytes+1))
	if err != nil {
		return nil, false, err
	}
	if len(data) > maxImageBytes {
		return nil, false, nil
	}
	return data, true, nil
}

type searchAuctionsQuery struct {
	Q           string  `form:"q"`
	CategoryIDs []int64 `form:"categoryIds"`
	SellerID    *int64  `form:"sellerId" binding:"omitempty,gt=0"`
	BidderID    *int64  `form:"bidderId" binding:"omitempty,gt=0"`
	SortBy      string  `form:"sortBy"`
	Count       *int    `form:"count" binding:"omitempty,min=0"`
	StartIndex  int     `form:"startIndex" binding:"min=0"`
}

var searchAuctionsParams = []string{"q", "categoryIds", "sellerId", "bidderId", "sortBy", "count", "startIndex"}

type createAuctionRequest struct {
	Title       string     `json:"title" binding:"required,max=128"`
	Description string     `json:"description" binding:"required,max=2048"`
	Reserve     *int64     `json:"reserve"`
	CategoryID  *int64     `json:"categoryId" binding:"required"`
	EndDate     *Timestamp `json:"endDate" binding:"required"`
}

type updateAuctionRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=128"`
	Description *string    `json:"description" binding:"omitempty,max=2048"`
	Reserve     *int64     `json:"reserve"`
	CategoryID  *int64     `json:"categoryId"`
	EndDate     *Timestamp `json:"endDate"`
}

type placeBidRequest struct {
	Amount *int64 `json:"amount" binding:"required"`
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName" binding:"required,max=64"`
	Email     string `json:"email" binding:"required,max=128"`
	Password  string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type modifyUserRequest struct {
	FirstName       *string `json:"firstName" binding:"omitempty,max=64"`
	LastName        *string `json:"lastName" binding:"omitempty,max=64"`
	Email           *string `json:"email" binding:"omitempty,max=128"`
	Password        *string `json:"password"`
	CurrentPassword *string `json:"currentPassword"`
}
