// Package wizard drives seller onboarding: Profile, Preferences, Payout, then
// Review. Moving between steps and saving a step are separate actions.
package wizard

import (
	"context"
	"errors"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	applog "localcart/internal/log"
	"localcart/internal/validate"
)

type Step int

const (
	Profile Step = iota
	Preferences
	Payout
	Review
)

var stepNames = [...]string{"profile", "preferences", "payout", "review"}

func (s Step) String() string {
	if s < Profile || s > Review {
		return "unknown"
	}
	return stepNames[s]
}

func ParseStep(s string) (Step, bool) {
	for i, n := range stepNames {
		if n == s {
			return Step(i), true
		}
	}
	return 0, false
}

var ErrTermsNotAccepted = errors.New("selling terms not accepted")

type Wizard struct {
	gw      gateway.Gateway
	step    Step
	loaded  bool
	Profile domain.SellerProfile
}

// Open starts a wizard at Profile for a seller who has accepted the terms.
func Open(ctx context.Context, gw gateway.Gateway) (*Wizard, error) {
	ok, err := TermsAccepted(ctx, gw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTermsNotAccepted
	}
	return New(gw), nil
}

func New(gw gateway.Gateway) *Wizard {
	return &Wizard{gw: gw, step: Profile, Profile: domain.SellerProfile{PayoutMethod: domain.PayoutMobileMoney}}
}

func (w *Wizard) Step() Step { return w.step }

// Valid reports whether step's fields allow moving past it. Review has no
// guard.
func (w *Wizard) Valid(step Step) bool {
	return Check(step, w.Profile) == nil
}

// Check returns the first failing field of step as a ValidationError.
func Check(step Step, p domain.SellerProfile) error {
	switch step {
	case Profile:
		for _, f := range []struct{ name, v string }{
			{domain.KeyFirstName, p.FirstName},
			{domain.KeyLastName, p.LastName},
			{domain.KeyPhone, p.Phone},
			{domain.KeyLocation, p.Location},
		} {
			if _, ok := validate.Required(f.v); !ok {
				return domain.Invalid(f.name, "required")
			}
		}
		if !validate.EmailLoose(p.Email) {
			return domain.Invalid(domain.KeyEmail, "must contain @")
		}
	case Preferences:
		if _, ok := validate.Required(p.ShopName); !ok {
			return domain.Invalid(domain.KeyShopName, "required")
		}
		if len(p.SellCategories) == 0 {
			return domain.Invalid(domain.KeySellCategories, "pick at least one category")
		}
	case Payout:
		switch p.PayoutMethod {
		case domain.PayoutMobileMoney:
			if !validate.Phone(p.PayoutMobilePhone) {
				return domain.Invalid(domain.KeyPayoutMobilePhone, "must have 9 to 12 digits")
			}
		case domain.PayoutPayPal:
			if _, ok := validate.Email(p.PayoutPayPalEmail); !ok {
				return domain.Invalid(domain.KeyPayoutPayPalEmail, "must contain @ and .")
			}
		default:
			return domain.Invalid(domain.KeyPayoutMethod, "unknown payout method")
		}
	}
	return nil
}

// Next advances one step when the current step is valid. It never saves.
func (w *Wizard) Next() bool {
	if w.step == Review || !w.Valid(w.step) {
		return false
	}
	w.step++
	return true
}

// Back moves one step back without any guard.
func (w *Wizard) Back() bool {
	if w.step == Profile {
		return false
	}
	w.step--
	return true
}

// Save merge-writes the current step's fields into users/{uid}.
func (w *Wizard) Save(ctx context.Context) error {
	return w.SaveStep(ctx, w.step)
}

// SaveStep merge-writes only step's keys. Invalid fields are reported and
// nothing is sent.
func (w *Wizard) SaveStep(ctx context.Context, step Step) error {
	uid, ok := gateway.UID(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	if err := Check(step, w.Profile); err != nil {
		return err
	}
	fields := StepFields(step, w.Profile)
	if len(fields) == 0 {
		return nil
	}
	if err := w.gw.MergeDocument(ctx, domain.UsersCollection, uid, fields); err != nil {
		applog.Error(nil, "wizard.save.fail", err, map[string]any{"user_id": uid, "step": step.String()})
		return err
	}
	applog.Audit(nil, "wizard.save", map[string]any{"user_id": uid, "step": step.String()})
	return nil
}

// StepFields is the subset of the users document owned by step.
func StepFields(step Step, p domain.SellerProfile) gateway.Fields {
	switch step {
	case Profile:
		return gateway.Fields{
			domain.KeyFirstName: p.FirstName,
			domain.KeyLastName:  p.LastName,
			domain.KeyEmail:     p.Email,
			domain.KeyPhone:     p.Phone,
			domain.KeyLocation:  p.Location,
		}
	case Preferences:
		set := domain.UniqueCategories(p.SellCategories)
		cats := make([]string, 0, len(set))
		for _, c := range set {
			cats = append(cats, c.DisplayName())
		}
		return gateway.Fields{
			domain.KeyShopName:        p.ShopName,
			domain.KeyShopDescription: p.ShopDescription,
			domain.KeySellCategories:  cats,
		}
	case Payout:
		return gateway.Fields{
			domain.KeyPayoutMethod:      string(p.PayoutMethod),
			domain.KeyPayoutMobilePhone: p.PayoutMobilePhone,
			domain.KeyPayoutPayPalEmail: p.PayoutPayPalEmail,
		}
	}
	return nil
}

// Load prefills the fields from users/{uid} the first time it is called. A
// failure leaves the defaults in place; the caller shows it and carries on.
func (w *Wizard) Load(ctx context.Context) error {
	if w.loaded {
		return nil
	}
	w.loaded = true
	uid, ok := gateway.UID(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	doc, err := w.gw.GetDocument(ctx, domain.UsersCollection, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		applog.Error(nil, "wizard.load.fail", err, map[string]any{"user_id": uid})
		return err
	}
	applyFields(&w.Profile, doc.Fields)
	return nil
}

func applyFields(p *domain.SellerProfile, f gateway.Fields) {
	str := func(key string, dst *string) {
		if v, ok := f[key].(string); ok {
			*dst = v
		}
	}
	str(domain.KeyFirstName, &p.FirstName)
	str(domain.KeyLastName, &p.LastName)
	str(domain.KeyEmail, &p.Email)
	str(domain.KeyPhone, &p.Phone)
	str(domain.KeyLocation, &p.Location)
	str(domain.KeyShopName, &p.ShopName)
	str(domain.KeyShopDescription, &p.ShopDescription)
	str(domain.KeyPayoutMobilePhone, &p.PayoutMobilePhone)
	str(domain.KeyPayoutPayPalEmail, &p.PayoutPayPalEmail)

	if m, ok := f[domain.KeyPayoutMethod].(string); ok {
		switch domain.PayoutMethod(m) {
		case domain.PayoutMobileMoney, domain.PayoutPayPal:
			p.PayoutMethod = domain.PayoutMethod(m)
		}
	}
	if list, ok := f[domain.KeySellCategories].([]any); ok {
		p.SellCategories = p.SellCategories[:0]
		for _, v := range list {
			s, _ := v.(string)
			if c, ok := domain.ParseCategory(s); ok {
				p.SellCategories = append(p.SellCategories, c)
			}
		}
		p.SellCategories = domain.UniqueCategories(p.SellCategories)
	}
}

// TermsAccepted reads the sellTermsAccepted flag from users/{uid}.
func TermsAccepted(ctx context.Context, gw gateway.Gateway) (bool, error) {
	uid, ok := gateway.UID(ctx)
	if !ok {
		return false, domain.ErrUnauthenticated
	}
	doc, err := gw.GetDocument(ctx, domain.UsersCollection, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	accepted, _ := doc.Fields[domain.KeySellTermsAccepted].(bool)
	return accepted, nil
}

func AcceptTerms(ctx context.Context, gw gateway.Gateway) error {
	uid, ok := gateway.UID(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	if err := gw.MergeDocument(ctx, domain.UsersCollection, uid, gateway.Fields{domain.KeySellTermsAccepted: true}); err != nil {
		return err
	}
	applog.Audit(nil, "sell.terms.accept", map[string]any{"user_id": uid})
	return nil
}
