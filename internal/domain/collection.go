package domain

import "time"

type SharingType string

const (
	SharingTypePublic  SharingType = "PUBLIC"
	SharingTypePrivate SharingType = "PRIVATE"
)

type Collection struct {
	ID          int32       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	SharingType SharingType `json:"sharing_type"`
	CreatorID   int32       `json:"creator_id"`
	CreatedOn   time.Time   `json:"created_on"`
	UpdatedOn   time.Time   `json:"updated_on"`
	// AuthorizedUserIDs is populated when fetching collection details.
	// Only meaningful for PRIVATE collections.
	AuthorizedUserIDs []int32 `json:"authorized_user_ids,omitempty"`
}

// IsAuthorized reports whether userID is in the authorized set.
func (c *Collection) IsAuthorized(userID int32) bool {
	for _, id := range c.AuthorizedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CanList reports whether the identity may see the collection in listings.
// Private collections are listed by title to every authenticated user for
// awareness, even without content access; anonymous callers only see
// public ones. This listed-but-locked asymmetry is a product rule, so it
// is kept as a predicate separate from CanViewContents.
func (c *Collection) CanList(id Identity) bool {
	if c.SharingType == SharingTypePublic {
		return true
	}
	return id.IsAuthenticated()
}

// CanViewContents reports whether the identity may see the items inside
// the collection.
func (c *Collection) CanViewContents(id Identity) bool {
	if c.SharingType == SharingTypePublic || id.IsLibrarian() {
		return true
	}
	if !id.IsAuthenticated() {
		return false
	}
	return c.CreatorID == id.UserID || c.IsAuthorized(id.UserID)
}

// CanMutate reports whether the identity may edit, delete, or change the
// membership of the collection. Only the creator may.
func (c *Collection) CanMutate(id Identity) bool {
	return id.IsAuthenticated() && c.CreatorID == id.UserID
}

type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "PENDING"
	AccessRequestApproved AccessRequestStatus = "APPROVED"
	AccessRequestDenied   AccessRequestStatus = "DENIED"
)

// CollectionAccessRequest is a patron's request for access to a private
// collection. At most one row exists per (collection, user) pair; a denied
// request is flipped back to PENDING on resubmission instead of inserting
// a duplicate.
type CollectionAccessRequest struct {
	ID           int32               `json:"id"`
	CollectionID int32               `json:"collection_id"`
	UserID       int32               `json:"user_id"`
	Status       AccessRequestStatus `json:"status"`
	RequestDate  time.Time           `json:"request_date"`
	ResponseDate *time.Time          `json:"response_date,omitempty"`
	ResponseNote string              `json:"response_note"`
}
