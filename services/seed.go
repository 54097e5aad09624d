package services

import (
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"go.uber.org/zap"
)

// SeedData builds the demo data set written on first start and when a stored collection is corrupt
type SeedData struct {
	Timeline       *Timeline
	Hasher         PasswordHasher
	ClientPassword string
	AdminPassword  string
	Logger         *zap.Logger
}

func (s SeedData) now() time.Time {
	return s.Timeline.Now()
}

func (s SeedData) daysFromNow(days int) time.Time {
	return s.now().AddDate(0, 0, days)
}

func (s SeedData) hash(password string) string {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		s.logger().Error("failed to hash seed password", zap.Error(err))
		return ""
	}
	return hash
}

func (s SeedData) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s SeedData) Clients() []models.Client {
	now := s.now()
	hash := s.hash(s.ClientPassword)
	return []models.Client{
		{ID: "1", Username: "client1", Name: "John Silva", Email: "john.silva@example.com", PasswordHash: hash, CreatedAt: now, UpdatedAt: now},
		{ID: "2", Username: "client2", Name: "Mary Oliveira", Email: "mary.oliveira@example.com", PasswordHash: hash, CreatedAt: now, UpdatedAt: now},
	}
}

func (s SeedData) Admins() []models.Admin {
	return []models.Admin{
		{ID: "admin1", Username: "admin", Name: "Main Administrator", PasswordHash: s.hash(s.AdminPassword)},
	}
}

func (s SeedData) furnitureItem(id, clientID, name, description, image string, status models.FurnitureStatus, completionInDays int, value float64) models.FurnitureItem {
	log, err := s.Timeline.SeedInitialLog(status)
	if err != nil {
		s.logger().Error("invalid seed status", zap.String("item_id", id), zap.Error(err))
	}
	now := s.now()
	return models.FurnitureItem{
		ID:                      id,
		ClientID:                clientID,
		Name:                    name,
		Description:             description,
		ImageURLs:               []string{image},
		Status:                  status,
		EstimatedCompletionDate: s.daysFromNow(completionInDays),
		ManufacturingLog:        log,
		ProjectValue:            &value,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func (s SeedData) Furniture() []models.FurnitureItem {
	return []models.FurnitureItem{
		s.furnitureItem("f1", "1", "Premium Custom Kitchen (John)",
			"Complete kitchen with marine MDF cabinets, quartz countertop and premium hardware.",
			"https://picsum.photos/seed/kitchen_john/600/400", models.StatusProductionStarted, 40, 25000),
		s.furnitureItem("f2", "1", "Modern Double Wardrobe (John)",
			"Six-door wardrobe with central mirror, inner drawers and top storage.",
			"https://picsum.photos/seed/wardrobe_john/600/400", models.StatusReadyForDelivery, 10, 8500),
		s.furnitureItem("f3", "2", "Living Room TV Panel (Mary)",
			"Slatted panel with lit niches for TVs up to 75 inches.",
			"https://picsum.photos/seed/tvpanel_mary/600/400", models.StatusCompleted, -5, 3200),
		s.furnitureItem("f4", "1", "Home Office (John)",
			"Study desk and wall cabinet.",
			"https://picsum.photos/seed/office_john/600/400", models.StatusDescriptiveApproved, 60, 4800),
	}
}

func (s SeedData) Deadlines() []models.Deadline {
	downPayment := "50% of the total value."
	return []models.Deadline{
		{ID: "d1", ClientID: "1", Title: "Kitchen Down Payment (John)", Date: s.daysFromNow(-60), Type: models.DeadlinePayment, Details: &downPayment},
		{ID: "d2", ClientID: "1", Title: "Kitchen Production Start (John)", Date: s.daysFromNow(-50), Type: models.DeadlineProductionStart},
		{ID: "d3", ClientID: "2", Title: "TV Panel Estimated Delivery (Mary)", Date: s.daysFromNow(7), Type: models.DeadlineEstimatedDelivery},
	}
}

func (s SeedData) AssistanceRequests() []models.AssistanceRequest {
	resolution := "Technician visited and adjusted the hinge. Issue resolved."
	return []models.AssistanceRequest{
		{
			ID:              "ar1",
			ClientID:        "1",
			Date:            s.daysFromNow(-15),
			Subject:         "Misaligned cabinet door (John)",
			Description:     "One of the kitchen cabinet doors looks slightly misaligned at the top.",
			Status:          models.AssistanceResolved,
			ResolutionNotes: &resolution,
			ImageURLs: []string{
				"https://picsum.photos/seed/assistance_ar1_img1/300/200",
				"https://picsum.photos/seed/assistance_ar1_img2/300/200",
			},
		},
		{
			ID:          "ar2",
			ClientID:    "2",
			Date:        s.daysFromNow(-2),
			Subject:     "Panel LED strip flickering (Mary)",
			Description: "The LED strip in one of the TV panel niches started flickering intermittently.",
			Status:      models.AssistanceUnderReview,
			ImageURLs:   []string{},
		},
	}
}

func (s SeedData) Messages() []models.Message {
	return []models.Message{
		{ID: "m1", ClientID: "1", Sender: models.SenderCompany, Content: "Hello John, welcome to the client portal! Your kitchen project is already in production.", Timestamp: s.daysFromNow(-20), Read: true},
		{ID: "m2", ClientID: "1", Sender: models.SenderClient, Content: "Thanks! Any estimate for when production will finish?", Timestamp: s.daysFromNow(-19), Read: true},
		{ID: "m3", ClientID: "2", Sender: models.SenderCompany, Content: "Hello Mary, your TV panel is ready to schedule delivery.", Timestamp: s.daysFromNow(-5), Read: false},
	}
}

func (s SeedData) PurchasedItems() []models.PurchasedItem {
	kitchen := "Marine MDF, quartz, Blum hardware"
	wardrobe := "6 doors, mirror, white MDF"
	panel := "Slatted, lit niches, wood-finish MDF"
	return []models.PurchasedItem{
		{ID: "pi1", ClientID: "1", Name: "Premium Custom Kitchen (History)", Quantity: 1, UnitPrice: 25000, TotalPrice: 25000, ImageURLs: []string{"https://picsum.photos/seed/kitchen_john_item/100/100"}, Details: &kitchen},
		{ID: "pi2", ClientID: "1", Name: "Modern Double Wardrobe (History)", Quantity: 1, UnitPrice: 8500, TotalPrice: 8500, ImageURLs: []string{"https://picsum.photos/seed/wardrobe_john_item/100/100"}, Details: &wardrobe},
		{ID: "pi3", ClientID: "2", Name: "Living Room TV Panel (History)", Quantity: 1, UnitPrice: 3200, TotalPrice: 3200, ImageURLs: []string{"https://picsum.photos/seed/tvpanel_mary_item/100/100"}, Details: &panel},
	}
}

func (s SeedData) Contracts() []models.ContractDetails {
	johnDoc := "/sample-contract.pdf"
	maryDoc := "signed_contract_mary.pdf"
	return []models.ContractDetails{
		{
			ClientID:       "1",
			ContractNumber: "CT-2024-00123",
			ClientName:     "John Silva",
			DateSigned:     s.daysFromNow(-70),
			ProjectAddress: "123 Palm Street, Happy District, Joyful City",
			TotalValue:     33500,
			PaymentTerms:   "50% down payment, 50% on delivery. Up to 10 card installments.",
			ScopeOfWork:    "Supply and installation of a custom kitchen and double wardrobe, as per approved designs.",
			DocumentURL:    &johnDoc,
		},
		{
			ClientID:       "2",
			ContractNumber: "CT-2024-00124",
			ClientName:     "Mary Oliveira",
			DateSigned:     s.daysFromNow(-45),
			ProjectAddress: "456 Acacia Avenue, Downtown, Joyful City",
			TotalValue:     3200,
			PaymentTerms:   "Full payment on design approval.",
			ScopeOfWork:    "Supply and installation of a TV panel, as per approved design.",
			DocumentURL:    &maryDoc,
		},
	}
}
