package github

import (
	"strings"
	"time"
)

// Identity addresses a repository on the hosting platform.
type Identity struct {
	Owner string
	Name  string
}

// ParseIdentity takes the last two "/"-separated segments of s as owner and
// name, dropping a trailing ".git" from the name. Malformed input is not
// rejected here; it surfaces as a failure on the first fetch.
func ParseIdentity(s string) Identity {
	parts := strings.Split(s, "/")
	var id Identity
	if len(parts) < 2 {
		id.Name = parts[0]
	} else {
		id.Owner = parts[len(parts)-2]
		id.Name = parts[len(parts)-1]
	}
	id.Name = strings.TrimSuffix(id.Name, ".git")
	return id
}

// FullName returns the "owner/name" form.
func (id Identity) FullName() string {
	return id.Owner + "/" + id.Name
}

// Valid reports whether both owner and name are set.
func (id Identity) Valid() bool {
	return id.Owner != "" && id.Name != ""
}

// RepositoryInfo is the part of the repository resource shown on a report.
type RepositoryInfo struct {
	Name        string
	OwnerLogin  string
	Description *string
	CreatedAt   time.Time
}

// Contributor is one entry of the contributors listing.
type Contributor struct {
	Login         string
	Contributions int
}

// ProxyCount holds both readings of a one-item issues page.
//
// Latest is the number of the most recent item, reported as the count even
// though numbers are shared between issues and pull requests and skip
// deleted items. Listed is the number of items the endpoint would return
// across all pages, taken from the last page of a per_page=1 listing.
type ProxyCount struct {
	Latest int
	Listed int
}
