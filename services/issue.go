package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"apartment-map/models"
	"apartment-map/utils"
)

// IssueDrafter builds prefilled new-issue links for handing a listing to
// the shared tracker. The link is an opaque redirect: the receiving
// automation reads the YAML block out of the issue body, so the drafter
// only guarantees the block's shape, never the outcome.
type IssueDrafter struct {
	repo  string // "owner/name"
	label string
	guard *utils.MinIntervalGuard
}

// NewIssueDrafter creates a drafter for the given repository. The guard
// swallows rapid-fire duplicate submissions.
func NewIssueDrafter(repo, label string, guard *utils.MinIntervalGuard) *IssueDrafter {
	return &IssueDrafter{repo: repo, label: label, guard: guard}
}

// Enabled reports whether a target repository is configured.
func (d *IssueDrafter) Enabled() bool {
	return d.repo != ""
}

// Draft returns the prefilled issue URL for l. The second return is false
// when the previous draft was requested inside the guard window: the
// request is dropped, not queued.
func (d *IssueDrafter) Draft(l models.Listing) (string, bool) {
	if d.repo == "" {
		return "", false
	}
	if !d.guard.TryAcquire() {
		return "", false
	}

	params := url.Values{}
	params.Set("title", issueTitle(l))
	if d.label != "" {
		params.Set("labels", d.label)
	}
	params.Set("body", issueBody(l))

	return fmt.Sprintf("https://github.com/%s/issues/new?%s", d.repo, params.Encode()), true
}

func issueTitle(l models.Listing) string {
	subject := strings.TrimSpace(l.Address)
	if subject == "" {
		subject = strings.TrimSpace(l.Label)
	}
	if subject == "" {
		subject = "nouvelle annonce"
	}
	return "[annonce] " + subject
}

// issueBody renders the form fields as a fenced YAML block. Absent
// optionals are left out entirely rather than written as empty keys.
func issueBody(l models.Listing) string {
	var b strings.Builder
	b.WriteString("```yaml\n")
	writeIntField(&b, "loyer", l.Rent)
	writeTextField(&b, "adresse", l.Address)
	writeTextField(&b, "cuisine_equipee", l.Kitchen)
	writeTextField(&b, "type", l.Type)
	writeTextField(&b, "parking", l.Parking)
	writeIntField(&b, "chambres", l.Bedrooms)
	if l.SurfaceM2 != nil {
		fmt.Fprintf(&b, "surface_m2: %s\n", strconv.FormatFloat(*l.SurfaceM2, 'f', -1, 64))
	}
	writeTextField(&b, "url", l.URL)
	writeTextField(&b, "label", l.Label)
	b.WriteString("```\n")
	return b.String()
}

func writeIntField(b *strings.Builder, key string, v *int) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "%s: %d\n", key, *v)
}

func writeTextField(b *strings.Builder, key, v string) {
	if v == "" {
		return
	}
	if strings.ContainsAny(v, ":#\"\n") {
		v = strconv.Quote(v)
	}
	fmt.Fprintf(b, "%s: %s\n", key, v)
}
