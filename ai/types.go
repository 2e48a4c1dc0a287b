package ai

// ListingMetadata holds the structured fields extracted from a job listing.
type ListingMetadata struct {
	// Title is the job title as stated in the listing.
	Title string

	// Company is the hiring company name.
	Company string

	// Location is the job location, or empty when not stated.
	Location string

	// Field is the engineering field classification.
	// Must match one of the values in JobFields.
	Field string

	// Skills lists the technical and professional skills the listing requires.
	Skills []string
}

// JobFields defines the valid engineering field classifications.
// Extractors map listings that fit none of them to "Other".
var JobFields = []string{
	"Backend Engineering",
	"Frontend Engineering",
	"Full Stack Engineering",
	"Mobile Engineering",
	"Data Engineering",
	"Machine Learning",
	"DevOps",
	"Site Reliability Engineering",
	"Security Engineering",
	"QA Engineering",
	"Embedded Systems",
	"Other",
}
