package followers

import (
	"time"

	"gorm.io/gorm"
)

// EventKind is the direction of a follower change.
type EventKind string

const (
	KindJoined EventKind = "JOINED"
	KindLeft   EventKind = "LEFT"
)

// Valid reports whether k is a known kind.
func (k EventKind) Valid() bool {
	return k == KindJoined || k == KindLeft
}

// Profile is a follower as the platform describes it.
type Profile struct {
	PlatformID int64  `json:"platform_id"`
	Handle     string `json:"handle"`
	Name       string `json:"name"`
}

// Account is the stable local identity of a platform user.
type Account struct {
	InternalID int64     `gorm:"column:internal_id;primaryKey;autoIncrement" json:"internal_id"`
	PlatformID int64     `gorm:"column:platform_id;not null;uniqueIndex:idx_accounts_platform_id" json:"platform_id"`
	Handle     string    `gorm:"column:handle;size:64" json:"handle"`
	Name       string    `gorm:"column:name;size:128" json:"name"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Profile returns the descriptive part of the account.
func (a Account) Profile() Profile {
	return Profile{PlatformID: a.PlatformID, Handle: a.Handle, Name: a.Name}
}

// FollowerState is one member of the stored follower set of a target.
type FollowerState struct {
	Target     string    `gorm:"column:target;primaryKey;size:64" json:"target"`
	PlatformID int64     `gorm:"column:platform_id;primaryKey;autoIncrement:false" json:"platform_id"`
	SeenAt     time.Time `gorm:"column:seen_at" json:"seen_at"`
}

func (FollowerState) TableName() string { return "follower_state" }

// FollowEvent records that an account joined or left the follower set of a
// target during one run.
type FollowEvent struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID    int64     `gorm:"column:internal_id;not null;index" json:"internal_id"`
	Account      *Account  `gorm:"foreignKey:AccountID;references:InternalID" json:"account,omitempty"`
	Target       string    `gorm:"column:target;size:64;not null;index:idx_follow_events_target_time" json:"target"`
	RunTimestamp time.Time `gorm:"column:run_timestamp;not null;index:idx_follow_events_target_time" json:"run_timestamp"`
	Kind         EventKind `gorm:"column:kind;size:8;not null" json:"kind"`
}

func (FollowEvent) TableName() string { return "follow_events" }

// Credential is the cached OAuth 2.0 grant. Key holds the access token and
// Secret the refresh token.
type Credential struct {
	Name      string     `gorm:"column:name;primaryKey;size:32" json:"-"`
	Key       string     `gorm:"column:access_key;type:text" json:"-"`
	Secret    string     `gorm:"column:access_secret;type:text" json:"-"`
	Expiry    *time.Time `gorm:"column:expiry" json:"expiry,omitempty"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Credential) TableName() string { return "credentials" }

// Models lists every table owned by the tracker.
func Models() []any {
	return []any{&Account{}, &FollowerState{}, &FollowEvent{}, &Credential{}}
}

// Migrate creates or updates the tracker tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
