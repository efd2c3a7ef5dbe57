package types

import "net"

// Role is the behavioral mode a running server commits to at startup.
// Routes are registered once from the role and never change afterwards.
type Role int

const (
	RoleTextSender Role = iota
	RoleFileSender
	RoleUploadReceiver
)

// Identifier returns the literal body served on /airshare. These strings are
// part of the wire contract and must match other implementations exactly.
func (r Role) Identifier() string {
	switch r {
	case RoleTextSender:
		return "Text Sender"
	case RoleFileSender:
		return "File Sender"
	case RoleUploadReceiver:
		return "Upload Receiver"
	default:
		return "Unknown"
	}
}

// RoleFromIdentifier maps an /airshare response body back to a Role.
func RoleFromIdentifier(s string) (Role, bool) {
	switch s {
	case "Text Sender":
		return RoleTextSender, true
	case "File Sender":
		return RoleFileSender, true
	case "Upload Receiver":
		return RoleUploadReceiver, true
	}
	return 0, false
}

// ServiceRecord is one advertised endpoint on the local network.
// At most one live record exists per name at any instant.
type ServiceRecord struct {
	Name    string
	Address net.IP // IPv4 only
	Port    int
}

// ShareSession is the content a server instance exposes. Exactly one of
// Text or the file fields is populated, selected by Role. A session is
// immutable once the server starts; Size and MimeType are derived once
// from the artifact on disk at session creation.
type ShareSession struct {
	Role Role

	// RoleTextSender
	Text string

	// RoleFileSender
	Path        string
	DisplayName string
	Size        int64
	MimeType    string
}

// TransferRequest is a resolved client-side target. Created transiently
// per operation, never persisted.
type TransferRequest struct {
	Name         string
	Address      net.IP
	Port         int
	ExpectedRole Role
}
