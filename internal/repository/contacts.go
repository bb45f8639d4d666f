package repository

import (
	"strings"
	"time"

	"github.com/valeri7122/hw14/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// birthdayWindowDays is the forward range of the upcoming-birthday query.
const birthdayWindowDays = 7

// ContactData carries the caller-supplied fields of a new contact.
// Validation (lengths, email shape) happens at the DTO layer; the
// repository trusts its input.
type ContactData struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
	Note      *string
}

// ContactUpdate is a full overwrite of the updatable contact fields.
type ContactUpdate struct {
	ContactData
	Done bool
}

// SearchQuery holds the optional exact-match search fields. Supplied
// fields are OR-ed together; ownership is always AND-ed on top.
type SearchQuery struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Contacts owns contact rows. Every operation takes the resolved owner
// account and applies the ownership predicate inside the query itself.
type Contacts struct {
	db *gorm.DB

	// now is swappable so the birthday window can be tested against a
	// fixed reference date.
	now func() time.Time
}

func NewContacts(db *gorm.DB) *Contacts {
	return &Contacts{db: db, now: time.Now}
}

// List returns the owner's contacts offset by skip and truncated to
// limit, in storage order. Out-of-range values yield an empty slice.
func (r *Contacts) List(skip, limit int, owner *models.User) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	err := r.db.Scopes(ForOwner(owner)).Offset(skip).Limit(limit).Find(&contacts).Error
	if err != nil {
		return nil, translate(err)
	}
	return contacts, nil
}

// Search returns the owner's contacts where any supplied field matches
// exactly. With no fields supplied it returns an empty slice rather than
// the whole book; listing everything is what List is for.
func (r *Contacts) Search(q SearchQuery, owner *models.User) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)

	var clauses []string
	var args []interface{}
	if q.FirstName != nil {
		clauses = append(clauses, "first_name = ?")
		args = append(args, *q.FirstName)
	}
	if q.LastName != nil {
		clauses = append(clauses, "last_name = ?")
		args = append(args, *q.LastName)
	}
	if q.Email != nil {
		clauses = append(clauses, "email = ?")
		args = append(args, *q.Email)
	}
	if len(clauses) == 0 {
		return contacts, nil
	}

	err := r.db.Scopes(ForOwner(owner)).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Find(&contacts).Error
	if err != nil {
		return nil, translate(err)
	}
	return contacts, nil
}

// UpcomingBirthdays returns the owner's contacts whose birthday
// month/day falls within the next birthdayWindowDays days, today
// inclusive. The stored year is ignored; the window wraps across
// year-end, and Feb 29 counts as Feb 28 when the reference year is not
// a leap year.
func (r *Contacts) UpcomingBirthdays(owner *models.User) ([]models.Contact, error) {
	var candidates []models.Contact
	if err := r.db.Scopes(ForOwner(owner)).Find(&candidates).Error; err != nil {
		return nil, translate(err)
	}

	today := r.now()
	year := today.Year()
	yearLen := 365
	if isLeapYear(year) {
		yearLen = 366
	}

	upcoming := make([]models.Contact, 0)
	for _, c := range candidates {
		birthday := time.Time(c.Birthday)
		month, day := birthday.Month(), birthday.Day()
		if month == time.February && day == 29 && !isLeapYear(year) {
			day = 28
		}
		next := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
		delta := (next.YearDay() - today.YearDay() + yearLen) % yearLen
		if delta <= birthdayWindowDays {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// Create persists a new contact owned by owner and returns the stored
// row with its assigned id and creation time. A colliding email or
// phone, under any owner, yields ErrDuplicate.
func (r *Contacts) Create(data ContactData, owner *models.User) (*models.Contact, error) {
	contact := models.Contact{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Birthday:  datatypes.Date(data.Birthday),
		Note:      data.Note,
		UserID:    owner.ID,
	}
	if err := r.db.Create(&contact).Error; err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

// Remove deletes the contact iff it belongs to owner and returns its
// prior state, or ErrNotFound.
func (r *Contacts) Remove(contactID uint, owner *models.User) (*models.Contact, error) {
	contact, err := r.byID(contactID, owner)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(contact).Error; err != nil {
		return nil, translate(err)
	}
	return contact, nil
}

// Update overwrites all updatable fields of the owner's contact and
// returns the stored result, or ErrNotFound.
func (r *Contacts) Update(contactID uint, data ContactUpdate, owner *models.User) (*models.Contact, error) {
	contact, err := r.byID(contactID, owner)
	if err != nil {
		return nil, err
	}

	contact.FirstName = data.FirstName
	contact.LastName = data.LastName
	contact.Email = data.Email
	contact.Phone = data.Phone
	contact.Birthday = datatypes.Date(data.Birthday)
	contact.Done = data.Done
	if data.Note != nil {
		contact.Note = data.Note
	}

	if err := r.db.Save(contact).Error; err != nil {
		return nil, translate(err)
	}
	return contact, nil
}

// UpdateStatus flips only the done flag; same not-found semantics as
// Update.
func (r *Contacts) UpdateStatus(contactID uint, done bool, owner *models.User) (*models.Contact, error) {
	contact, err := r.byID(contactID, owner)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(contact).Update("done", done).Error; err != nil {
		return nil, translate(err)
	}
	return contact, nil
}

func (r *Contacts) byID(contactID uint, owner *models.User) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Scopes(ForOwner(owner)).First(&contact, "id = ?", contactID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
