// model/claims.go
package model

// Claims is the trusted identity attribute bundle for the current actor.
// Token verification happens upstream; by the time a request reaches the
// gateway the claims are assumed validated. Immutable per request.
type Claims struct {
	Sub           string `json:"sub" yaml:"sub"`
	Role          string `json:"role" yaml:"role" binding:"required"`
	Department    string `json:"department,omitempty" yaml:"department,omitempty"`
	ClinicID      string `json:"clinic_id,omitempty" yaml:"clinic_id,omitempty"`
	Clearance     string `json:"clearance,omitempty" yaml:"clearance,omitempty"`
	LicenseStatus string `json:"license_status,omitempty" yaml:"license_status,omitempty"`
	Region        string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Attribute resolves a claim attribute by its wire name. The second
// return reports whether the name is a known claim attribute at all;
// an empty value for a known attribute returns ("", true).
func (c Claims) Attribute(name string) (string, bool) {
	switch name {
	case "sub":
		return c.Sub, true
	case "role":
		return c.Role, true
	case "department":
		return c.Department, true
	case "clinic_id":
		return c.ClinicID, true
	case "clearance":
		return c.Clearance, true
	case "license_status":
		return c.LicenseStatus, true
	case "region":
		return c.Region, true
	default:
		return "", false
	}
}
