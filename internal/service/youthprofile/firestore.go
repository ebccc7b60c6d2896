package youthprofile

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/delta94/youth-membership-admin-ui/internal/platform/logging"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

const (
	profilesCollection = "youthProfiles"
	countersCollection = "counters"
	resourceType       = "youth_profile"
)

type firestoreAddress struct {
	Address     string `firestore:"address"`
	PostalCode  string `firestore:"postal_code"`
	City        string `firestore:"city"`
	CountryCode string `firestore:"country_code"`
	Primary     bool   `firestore:"primary"`
}

// firestoreYouthProfile maps to Firestore document structure.
type firestoreYouthProfile struct {
	MembershipNumber   string             `firestore:"membership_number"`
	Expiration         time.Time          `firestore:"expiration"`
	FirstName          string             `firestore:"first_name"`
	LastName           string             `firestore:"last_name"`
	FirstNameKey       string             `firestore:"first_name_key"`
	LastNameKey        string             `firestore:"last_name_key"`
	PrimaryAddress     firestoreAddress   `firestore:"primary_address"`
	Addresses          []firestoreAddress `firestore:"addresses"`
	Email              string             `firestore:"email"`
	Phone              string             `firestore:"phone"`
	BirthDate          string             `firestore:"birth_date"`
	ProfileLanguage    string             `firestore:"profile_language"`
	LanguageAtHome     string             `firestore:"language_at_home"`
	SchoolName         string             `firestore:"school_name"`
	SchoolClass        string             `firestore:"school_class"`
	PhotoUsageApproved bool               `firestore:"photo_usage_approved"`
	ApproverFirstName  string             `firestore:"approver_first_name"`
	ApproverLastName   string             `firestore:"approver_last_name"`
	ApproverEmail      string             `firestore:"approver_email"`
	ApproverPhone      string             `firestore:"approver_phone"`
	CreatedAt          time.Time          `firestore:"created_at"`
	UpdatedAt          time.Time          `firestore:"updated_at"`
}

// firestoreCounter holds the last issued membership sequence number.
type firestoreCounter struct {
	Last int64 `firestore:"last"`
}

func toFirestoreAddress(a yp.AddressEntry) firestoreAddress {
	return firestoreAddress(a)
}

func fromFirestoreAddress(a firestoreAddress) yp.AddressEntry {
	return yp.AddressEntry(a)
}

// setRecord copies a normalized record into the document.
func (fp *firestoreYouthProfile) setRecord(rec yp.ProfileRecord) {
	photo, _ := rec.PhotoUsageApproved.Bool()

	fp.FirstName = rec.FirstName
	fp.LastName = rec.LastName
	fp.FirstNameKey = nameKey(rec.FirstName)
	fp.LastNameKey = nameKey(rec.LastName)
	fp.PrimaryAddress = toFirestoreAddress(rec.PrimaryAddress)
	fp.Addresses = make([]firestoreAddress, len(rec.Addresses))
	for i, a := range rec.Addresses {
		fp.Addresses[i] = toFirestoreAddress(a)
	}
	fp.Email = rec.Email
	fp.Phone = rec.Phone
	fp.BirthDate = rec.BirthDate
	fp.ProfileLanguage = rec.ProfileLanguage
	fp.LanguageAtHome = rec.LanguageAtHome
	fp.SchoolName = rec.SchoolName
	fp.SchoolClass = rec.SchoolClass
	fp.PhotoUsageApproved = photo
	fp.ApproverFirstName = rec.ApproverFirstName
	fp.ApproverLastName = rec.ApproverLastName
	fp.ApproverEmail = rec.ApproverEmail
	fp.ApproverPhone = rec.ApproverPhone
}

func (fp *firestoreYouthProfile) record() yp.ProfileRecord {
	addresses := make([]yp.AddressEntry, len(fp.Addresses))
	for i, a := range fp.Addresses {
		addresses[i] = fromFirestoreAddress(a)
	}
	return yp.ProfileRecord{
		FirstName:          fp.FirstName,
		LastName:           fp.LastName,
		PrimaryAddress:     fromFirestoreAddress(fp.PrimaryAddress),
		Addresses:          addresses,
		Email:              fp.Email,
		Phone:              fp.Phone,
		BirthDate:          fp.BirthDate,
		ProfileLanguage:    fp.ProfileLanguage,
		LanguageAtHome:     fp.LanguageAtHome,
		SchoolName:         fp.SchoolName,
		SchoolClass:        fp.SchoolClass,
		PhotoUsageApproved: yp.ChoiceOf(fp.PhotoUsageApproved),
		ApproverFirstName:  fp.ApproverFirstName,
		ApproverLastName:   fp.ApproverLastName,
		ApproverEmail:      fp.ApproverEmail,
		ApproverPhone:      fp.ApproverPhone,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, now: time.Now}
}

func (s *FirestoreStore) profiles() *firestore.CollectionRef {
	return s.client.Collection(profilesCollection)
}

func (s *FirestoreStore) counterRef() *firestore.DocumentRef {
	return s.client.Collection(countersCollection).Doc(profilesCollection)
}

// Ping reads the membership counter document. A counter that does not exist
// yet still proves Firestore is reachable.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.counterRef().Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

func (s *FirestoreStore) toProfile(id string, fp *firestoreYouthProfile) *YouthProfile {
	return &YouthProfile{
		ID:               id,
		MembershipNumber: fp.MembershipNumber,
		Status:           StatusAt(fp.Expiration.UTC(), s.now()),
		Expiration:       fp.Expiration.UTC(),
		Record:           fp.record(),
		CreatedAt:        fp.CreatedAt.UTC(),
		UpdatedAt:        fp.UpdatedAt.UTC(),
	}
}

func audit(ctx context.Context, action, id string, err error) {
	ev := applog.AuditEvent{
		Action:       action,
		ActorID:      applog.ActorFromContext(ctx),
		ResourceType: resourceType,
		ResourceID:   id,
		Result:       applog.AuditSuccess,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Reason = categorizeError(err)
	}
	applog.LogAuditEvent(ctx, ev)
}

// Create stores a new profile and issues the next membership number in the
// same transaction.
func (s *FirestoreStore) Create(ctx context.Context, rec yp.ProfileRecord) (*YouthProfile, error) {
	id := uuid.NewString()
	docRef := s.profiles().Doc(id)
	counterRef := s.counterRef()
	now := s.now().UTC()

	var fp firestoreYouthProfile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter firestoreCounter
		doc, err := tx.Get(counterRef)
		switch {
		case err == nil:
			if err := doc.DataTo(&counter); err != nil {
				return err
			}
		case status.Code(err) != codes.NotFound:
			return err
		}
		counter.Last++

		fp = firestoreYouthProfile{
			MembershipNumber: formatMembershipNumber(counter.Last),
			Expiration:       SeasonEnd(now),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		fp.setRecord(normalize(rec))

		if err := tx.Set(counterRef, counter); err != nil {
			return err
		}
		return tx.Create(docRef, fp)
	})
	if status.Code(err) == codes.AlreadyExists {
		err = ErrAlreadyExists
	}
	audit(ctx, "create", id, err)
	if err != nil {
		return nil, err
	}
	return s.toProfile(id, &fp), nil
}

// Get retrieves a profile by ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*YouthProfile, error) {
	doc, err := s.profiles().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreYouthProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return s.toProfile(id, &fp), nil
}

// List returns matching profiles ordered by last name, first name and ID.
func (s *FirestoreStore) List(ctx context.Context, params ListParams) ([]*YouthProfile, error) {
	q := s.profiles().Query
	if params.FirstName != "" {
		q = q.Where("first_name_key", "==", nameKey(params.FirstName))
	}
	if params.LastName != "" {
		q = q.Where("last_name_key", "==", nameKey(params.LastName))
	}
	q = q.OrderBy("last_name_key", firestore.Asc).
		OrderBy("first_name_key", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc)

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]*YouthProfile, 0, len(docs))
	for _, doc := range docs {
		var fp firestoreYouthProfile
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		out = append(out, s.toProfile(doc.Ref.ID, &fp))
	}
	return out, nil
}

// mutate applies change to an existing profile inside a transaction.
func (s *FirestoreStore) mutate(
	ctx context.Context,
	action, id string,
	change func(fp *firestoreYouthProfile, now time.Time),
) (*YouthProfile, error) {
	docRef := s.profiles().Doc(id)

	var fp firestoreYouthProfile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		fp = firestoreYouthProfile{}
		if err := doc.DataTo(&fp); err != nil {
			return err
		}
		now := s.now().UTC()
		change(&fp, now)
		fp.UpdatedAt = now

		return tx.Set(docRef, fp)
	})
	audit(ctx, action, id, err)
	if err != nil {
		return nil, err
	}
	return s.toProfile(id, &fp), nil
}

// Update replaces the record of a profile. Membership data is unchanged.
func (s *FirestoreStore) Update(ctx context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error) {
	rec = normalize(rec)
	return s.mutate(ctx, "update", id, func(fp *firestoreYouthProfile, _ time.Time) {
		fp.setRecord(rec)
	})
}

// Renew replaces the record and extends the membership by one season.
func (s *FirestoreStore) Renew(ctx context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error) {
	rec = normalize(rec)
	return s.mutate(ctx, "renew", id, func(fp *firestoreYouthProfile, now time.Time) {
		fp.setRecord(rec)
		fp.Expiration = renewedExpiration(fp.Expiration.UTC(), now)
	})
}

// Delete removes a profile using a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	docRef := s.profiles().Doc(id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	audit(ctx, "delete", id, err)
	return err
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
