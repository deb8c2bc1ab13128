package models

import "time"

// ProfileID and TaskID are distinct types so the two identifier spaces
// cannot be swapped at a call site. Plain integers at the storage boundary.
type ProfileID uint64

type TaskID uint64

// Profile is a named configuration template tasks are submitted against.
// Created once, never updated or deleted.
type Profile struct {
	ID   ProfileID `json:"id" gorm:"primaryKey;autoIncrement"`
	Base string    `json:"base" gorm:"type:varchar(255);index;not null"`
	Name string    `json:"name" gorm:"type:varchar(255);unique;not null"`
	// JSON is the opaque configuration document, stored and returned verbatim.
	JSON      string    `json:"json" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is an immutable record of a submitted payload, tied to exactly one
// Profile. Digest is computed server-side over Data at creation time.
type Task struct {
	ID        TaskID    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProfileID ProfileID `json:"profile_id" gorm:"index;not null"`
	FileName  string    `json:"file_name" gorm:"type:varchar(255)"`
	Data      []byte    `json:"data" gorm:"not null"`
	Digest    string    `json:"digest" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`

	Profile *Profile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:RESTRICT"`
}

// OperationLog records RPC mutations and out-of-contract conditions.
type OperationLog struct {
	ID      uint      `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	TraceID string    `json:"trace_id" gorm:"type:varchar(36)"`
	Method  string    `json:"method" gorm:"type:varchar(64)"`
	Message string    `json:"message" gorm:"type:text;not null"`
	Level   string    `json:"level" gorm:"type:varchar(20);not null"`
	Time    time.Time `json:"time" gorm:"autoCreateTime;not null"`
}
