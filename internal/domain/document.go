package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DocumentStatus review status of an identity document
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// DocumentType kind of identity document
type DocumentType string

const (
	DocumentPassport       DocumentType = "passport"
	DocumentNationalID     DocumentType = "national_id"
	DocumentDrivingLicense DocumentType = "driving_license"
)

var (
	// ErrUnknownDocumentType is returned for unsupported document types
	ErrUnknownDocumentType = errors.New("domain: unknown document type")

	// ErrInvalidDocumentData is returned when document fields fail validation
	ErrInvalidDocumentData = errors.New("domain: invalid document data")
)

var (
	countryCodeRe    = regexp.MustCompile(`^[A-Z]{2}$`)
	documentNumberRe = regexp.MustCompile(`^[A-Z0-9-]{4,20}$`)
)

// DocumentData is the typed payload of a document. Exactly one implementation per DocumentType.
type DocumentData interface {
	Type() DocumentType
	Validate(now time.Time) error
}

// PassportData fields of a passport
type PassportData struct {
	Number    string `json:"number"`
	Country   string `json:"country"`
	ExpiresOn string `json:"expiresOn"` // YYYY-MM-DD
}

func (PassportData) Type() DocumentType { return DocumentPassport }

func (d PassportData) Validate(now time.Time) error {
	if err := validateNumberAndCountry(d.Number, d.Country); err != nil {
		return err
	}
	return validateNotExpired(d.ExpiresOn, now)
}

// NationalIDData fields of a national identity card
type NationalIDData struct {
	Number  string `json:"number"`
	Country string `json:"country"`
}

func (NationalIDData) Type() DocumentType { return DocumentNationalID }

func (d NationalIDData) Validate(time.Time) error {
	return validateNumberAndCountry(d.Number, d.Country)
}

// DrivingLicenseData fields of a driving license
type DrivingLicenseData struct {
	Number    string `json:"number"`
	Country   string `json:"country"`
	ExpiresOn string `json:"expiresOn"`
}

func (DrivingLicenseData) Type() DocumentType { return DocumentDrivingLicense }

func (d DrivingLicenseData) Validate(now time.Time) error {
	if err := validateNumberAndCountry(d.Number, d.Country); err != nil {
		return err
	}
	return validateNotExpired(d.ExpiresOn, now)
}

// Document is an identity document submitted by a user
type Document struct {
	ID            int64
	UserID        int64
	BookingID     *int64
	Type          DocumentType
	Data          DocumentData
	Status        DocumentStatus
	ReviewerID    *int64
	ReviewComment *string
	ReviewedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DecodeDocumentData parses raw JSON into the typed payload for docType.
// Unknown fields are rejected so that the stored JSON always matches the schema.
func DecodeDocumentData(docType DocumentType, raw []byte) (DocumentData, error) {
	var data DocumentData
	switch docType {
	case DocumentPassport:
		var d PassportData
		if err := strictUnmarshal(raw, &d); err != nil {
			return nil, err
		}
		data = d
	case DocumentNationalID:
		var d NationalIDData
		if err := strictUnmarshal(raw, &d); err != nil {
			return nil, err
		}
		data = d
	case DocumentDrivingLicense:
		var d DrivingLicenseData
		if err := strictUnmarshal(raw, &d); err != nil {
			return nil, err
		}
		data = d
	default:
		return nil, ErrUnknownDocumentType
	}
	return data, nil
}

func strictUnmarshal(raw []byte, dst interface{}) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocumentData, err)
	}
	return nil
}

func validateNumberAndCountry(number, country string) error {
	if !documentNumberRe.MatchString(number) {
		return fmt.Errorf("%w: number must be 4-20 upper-case letters, digits or dashes", ErrInvalidDocumentData)
	}
	if !countryCodeRe.MatchString(country) {
		return fmt.Errorf("%w: country must be an ISO 3166 alpha-2 code", ErrInvalidDocumentData)
	}
	return nil
}

func validateNotExpired(expiresOn string, now time.Time) error {
	exp, err := time.Parse(DateFormat, expiresOn)
	if err != nil {
		return fmt.Errorf("%w: expiresOn must be YYYY-MM-DD", ErrInvalidDocumentData)
	}
	if !exp.After(DateOnly(now)) {
		return fmt.Errorf("%w: document expired", ErrInvalidDocumentData)
	}
	return nil
}
