package usecase

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/shared/mailer"
	"github.com/shagunapp/shagun-api/shared/provider"
)

// In-memory repository fakes. They mirror the mongo repositories'
// contracts, in particular returning mongo.ErrNoDocuments for misses.

type fakeUserRepo struct {
	users map[bson.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	stored := *user
	stored.ID = bson.NewObjectID()
	stored.CreatedAt = time.Now()
	r.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	user, ok := r.users[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *user
	return &out, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByMobile(_ context.Context, mobile string) (*model.User, error) {
	for _, user := range r.users {
		if user.Mobile == mobile {
			out := *user
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	user, ok := r.users[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Mobile != nil {
		user.Mobile = *params.Mobile
	}
	if params.Password != nil {
		user.Password = *params.Password
	}
	if params.OTP != nil {
		user.OTP = *params.OTP
	}
	if params.OTPExpires != nil {
		user.OTPExpires = *params.OTPExpires
	}
	if params.IsVerified != nil {
		user.IsVerified = *params.IsVerified
	}
	if params.IsPremium != nil {
		user.IsPremium = *params.IsPremium
	}
	if params.ResetPasswordToken != nil {
		user.ResetPasswordToken = *params.ResetPasswordToken
	}
	if params.ResetPasswordExpire != nil {
		user.ResetPasswordExpire = *params.ResetPasswordExpire
	}
	if params.ProfileImage != nil {
		user.ProfileImage = *params.ProfileImage
	}
	if params.ClearOTP {
		user.OTP = ""
		user.OTPExpires = time.Time{}
	}
	if params.ClearResetToken {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = time.Time{}
	}

	out := *user
	return &out, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	user, ok := r.users[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.users, oid)
	out := *user
	return &out, nil
}

type fakeWeddingRepo struct {
	weddings map[bson.ObjectID]*model.Wedding
	clock    time.Time
}

func newFakeWeddingRepo() *fakeWeddingRepo {
	return &fakeWeddingRepo{
		weddings: make(map[bson.ObjectID]*model.Wedding),
		clock:    time.Now(),
	}
}

func (r *fakeWeddingRepo) CreateWedding(_ context.Context, wedding *model.Wedding) (*model.Wedding, error) {
	stored := *wedding
	stored.ID = bson.NewObjectID()

	// Strictly increasing creation times keep "latest" deterministic.
	r.clock = r.clock.Add(time.Second)
	stored.CreatedAt = r.clock
	r.weddings[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeWeddingRepo) GetOwnedWedding(_ context.Context, id string, userID bson.ObjectID) (*model.Wedding, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	wedding, ok := r.weddings[oid]
	if !ok || wedding.User != userID {
		return nil, mongo.ErrNoDocuments
	}

	out := *wedding
	return &out, nil
}

func (r *fakeWeddingRepo) ListWeddingsByUser(_ context.Context, userID bson.ObjectID) ([]*model.Wedding, error) {
	var result []*model.Wedding
	for _, wedding := range r.weddings {
		if wedding.User == userID {
			out := *wedding
			result = append(result, &out)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeWeddingRepo) LatestWeddingByUser(_ context.Context, userID bson.ObjectID) (*model.Wedding, error) {
	var latest *model.Wedding
	for _, wedding := range r.weddings {
		if wedding.User != userID {
			continue
		}
		if latest == nil || wedding.CreatedAt.After(latest.CreatedAt) {
			latest = wedding
		}
	}

	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}

	out := *latest
	return &out, nil
}

func (r *fakeWeddingRepo) UpdateWedding(_ context.Context, id string, userID bson.ObjectID, params repository.UpdateWeddingParams) (*model.Wedding, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	wedding, ok := r.weddings[oid]
	if !ok || wedding.User != userID {
		return nil, mongo.ErrNoDocuments
	}

	if params.GroomName != nil {
		wedding.GroomName = *params.GroomName
	}
	if params.BrideName != nil {
		wedding.BrideName = *params.BrideName
	}
	if params.GroomImage != nil {
		wedding.GroomImage = *params.GroomImage
	}
	if params.BrideImage != nil {
		wedding.BrideImage = *params.BrideImage
	}
	if params.Date != nil {
		wedding.Date = *params.Date
	}
	if params.TotalBudget != nil {
		wedding.TotalBudget = *params.TotalBudget
	}

	out := *wedding
	return &out, nil
}

func (r *fakeWeddingRepo) ListWeddingIDs(_ context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	var ids []bson.ObjectID
	for id, wedding := range r.weddings {
		if wedding.User == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeWeddingRepo) DeleteWeddingsByUser(_ context.Context, userID bson.ObjectID) (int64, error) {
	var deleted int64
	for id, wedding := range r.weddings {
		if wedding.User == userID {
			delete(r.weddings, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeGuestRepo struct {
	guests map[bson.ObjectID]*model.Guest
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[bson.ObjectID]*model.Guest)}
}

func (r *fakeGuestRepo) CreateGuest(_ context.Context, guest *model.Guest) (*model.Guest, error) {
	stored := *guest
	stored.ID = bson.NewObjectID()
	stored.CreatedAt = time.Now()
	r.guests[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeGuestRepo) GetGuest(_ context.Context, id string) (*model.Guest, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	guest, ok := r.guests[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *guest
	return &out, nil
}

func (r *fakeGuestRepo) ListGuestsByWedding(_ context.Context, weddingID bson.ObjectID) ([]*model.Guest, error) {
	var result []*model.Guest
	for _, guest := range r.guests {
		if guest.Wedding == weddingID {
			out := *guest
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *fakeGuestRepo) CountGuestsByWedding(_ context.Context, weddingID bson.ObjectID) (int64, error) {
	var count int64
	for _, guest := range r.guests {
		if guest.Wedding == weddingID {
			count++
		}
	}
	return count, nil
}

func (r *fakeGuestRepo) UpdateGuest(_ context.Context, id string, params repository.UpdateGuestParams) (*model.Guest, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	guest, ok := r.guests[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		guest.Name = *params.Name
	}
	if params.CityVillage != nil {
		guest.CityVillage = *params.CityVillage
	}
	if params.FamilyCount != nil {
		guest.FamilyCount = *params.FamilyCount
	}
	if params.IsInvited != nil {
		guest.IsInvited = *params.IsInvited
	}
	if params.ShagunAmount != nil {
		guest.ShagunAmount = *params.ShagunAmount
	}

	out := *guest
	return &out, nil
}

func (r *fakeGuestRepo) DeleteGuestsByWeddings(_ context.Context, weddingIDs []bson.ObjectID) (int64, error) {
	var deleted int64
	for id, guest := range r.guests {
		for _, weddingID := range weddingIDs {
			if guest.Wedding == weddingID {
				delete(r.guests, id)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

type fakeExpenseRepo struct {
	expenses map[bson.ObjectID]*model.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[bson.ObjectID]*model.Expense)}
}

func (r *fakeExpenseRepo) CreateExpense(_ context.Context, expense *model.Expense) (*model.Expense, error) {
	stored := *expense
	stored.ID = bson.NewObjectID()
	if stored.Date.IsZero() {
		stored.Date = time.Now()
	}
	r.expenses[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeExpenseRepo) GetExpense(_ context.Context, id string) (*model.Expense, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	expense, ok := r.expenses[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *expense
	return &out, nil
}

func (r *fakeExpenseRepo) ListExpensesByWedding(_ context.Context, weddingID bson.ObjectID) ([]*model.Expense, error) {
	var result []*model.Expense
	for _, expense := range r.expenses {
		if expense.Wedding == weddingID {
			out := *expense
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *fakeExpenseRepo) UpdateExpense(_ context.Context, id string, params repository.UpdateExpenseParams) (*model.Expense, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	expense, ok := r.expenses[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Title != nil {
		expense.Title = *params.Title
	}
	if params.Amount != nil {
		expense.Amount = *params.Amount
	}
	if params.PaidAmount != nil {
		expense.PaidAmount = *params.PaidAmount
	}
	if params.Category != nil {
		expense.Category = *params.Category
	}
	if params.Date != nil {
		expense.Date = *params.Date
	}

	out := *expense
	return &out, nil
}

func (r *fakeExpenseRepo) DeleteExpensesByWeddings(_ context.Context, weddingIDs []bson.ObjectID) (int64, error) {
	var deleted int64
	for id, expense := range r.expenses {
		for _, weddingID := range weddingIDs {
			if expense.Wedding == weddingID {
				delete(r.expenses, id)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

type fakeShagunRepo struct {
	entries map[bson.ObjectID]*model.Shagun
}

func newFakeShagunRepo() *fakeShagunRepo {
	return &fakeShagunRepo{entries: make(map[bson.ObjectID]*model.Shagun)}
}

func (r *fakeShagunRepo) CreateShagun(_ context.Context, shagun *model.Shagun) (*model.Shagun, error) {
	stored := *shagun
	stored.ID = bson.NewObjectID()
	if stored.Date.IsZero() {
		stored.Date = time.Now()
	}
	if stored.Type == "" {
		stored.Type = model.ShagunReceived
	}
	r.entries[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeShagunRepo) GetShagun(_ context.Context, id string) (*model.Shagun, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	entry, ok := r.entries[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *entry
	return &out, nil
}

func (r *fakeShagunRepo) ListShagunByWedding(_ context.Context, weddingID bson.ObjectID) ([]*model.Shagun, error) {
	var result []*model.Shagun
	for _, entry := range r.entries {
		if entry.Wedding == weddingID {
			out := *entry
			result = append(result, &out)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeShagunRepo) UpdateShagun(_ context.Context, id string, params repository.UpdateShagunParams) (*model.Shagun, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	entry, ok := r.entries[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		entry.Name = *params.Name
	}
	if params.Amount != nil {
		entry.Amount = *params.Amount
	}
	if params.City != nil {
		entry.City = *params.City
	}
	if params.Gift != nil {
		entry.Gift = *params.Gift
	}
	if params.Contact != nil {
		entry.Contact = *params.Contact
	}
	if params.Wishes != nil {
		entry.Wishes = *params.Wishes
	}
	if params.Type != nil {
		entry.Type = *params.Type
	}
	if params.Date != nil {
		entry.Date = *params.Date
	}

	out := *entry
	return &out, nil
}

func (r *fakeShagunRepo) DeleteShagun(_ context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	if _, ok := r.entries[oid]; !ok {
		return mongo.ErrNoDocuments
	}

	delete(r.entries, oid)
	return nil
}

func (r *fakeShagunRepo) DeleteShagunByWeddings(_ context.Context, weddingIDs []bson.ObjectID) (int64, error) {
	var deleted int64
	for id, entry := range r.entries {
		for _, weddingID := range weddingIDs {
			if entry.Wedding == weddingID {
				delete(r.entries, id)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

// fakeProvider returns a canned identity or error.
type fakeProvider struct {
	name     string
	identity *provider.Identity
	err      error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Verify(_ context.Context, _ provider.Assertion) (*provider.Identity, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.identity, nil
}

// recordingSender satisfies mailer.Sender and swallows every message.
type recordingSender struct{}

func (s *recordingSender) Send(_ mailer.Email) error { return nil }
