package inventory

import (
	"time"

	"equiptrack/internal/domain"
)

// Dataset is a complete set of collections, used for the load fallback and for seeding.
type Dataset struct {
	Equipment []domain.Equipment
	Requests  []domain.EquipmentRequest
	Users     []domain.User
}

// Fixture returns a fresh copy of the deterministic built-in dataset.
func Fixture() Dataset {
	return Dataset{
		Equipment: []domain.Equipment{
			{
				ID:              "equip-001",
				Name:            "Dell XPS 15 Laptop",
				Description:     "High-performance laptop with 16GB RAM and 512GB SSD",
				Category:        "Computer",
				Status:          domain.EquipmentAvailable,
				Location:        "Main Office",
				SerialNumber:    "DL-XPS-123456",
				PurchaseDate:    day("2022-05-15"),
				LastMaintenance: day("2023-01-20"),
				Image:           "https://picsum.photos/seed/laptop/300/200",
				Quantity:        5,
			},
			{
				ID:              "equip-002",
				Name:            "Canon EOS R Camera",
				Description:     "Professional mirrorless camera with 30MP sensor",
				Category:        "Photography",
				Status:          domain.EquipmentInUse,
				Location:        "Media Room",
				SerialNumber:    "CN-EOS-789012",
				PurchaseDate:    day("2021-11-03"),
				LastMaintenance: day("2023-03-15"),
				Image:           "https://picsum.photos/seed/camera/300/200",
				Quantity:        2,
			},
			{
				ID:              "equip-003",
				Name:            "Conference Room Projector",
				Description:     "4K ultra HD projector for presentations",
				Category:        "Audio/Visual",
				Status:          domain.EquipmentAvailable,
				Location:        "Conference Room A",
				SerialNumber:    "EP-4K-345678",
				PurchaseDate:    day("2022-01-10"),
				LastMaintenance: day("2023-02-28"),
				Image:           "https://picsum.photos/seed/projector/300/200",
				Quantity:        3,
			},
			{
				ID:           "equip-004",
				Name:         "Standing Desk",
				Description:  "Adjustable height standing desk",
				Category:     "Furniture",
				Status:       domain.EquipmentAvailable,
				Location:     "Open Office Area",
				SerialNumber: "SD-ADJ-901234",
				PurchaseDate: day("2022-07-22"),
				Image:        "https://picsum.photos/seed/desk/300/200",
				Quantity:     8,
			},
			{
				ID:              "equip-005",
				Name:            "Wireless Headphones",
				Description:     "Noise-cancelling Bluetooth headphones",
				Category:        "Audio/Visual",
				Status:          domain.EquipmentMaintenance,
				Location:        "IT Department",
				SerialNumber:    "WH-NC-567890",
				PurchaseDate:    day("2022-03-05"),
				LastMaintenance: day("2023-04-10"),
				Image:           "https://picsum.photos/seed/headphones/300/200",
				Quantity:        10,
			},
			{
				ID:           "equip-006",
				Name:         "iPad Pro",
				Description:  "12.9-inch iPad Pro with Apple Pencil",
				Category:     "Mobile Device",
				Status:       domain.EquipmentAvailable,
				Location:     "Design Department",
				SerialNumber: "IP-PRO-123789",
				PurchaseDate: day("2022-09-18"),
				Image:        "https://picsum.photos/seed/ipad/300/200",
				Quantity:     4,
			},
		},
		Users: []domain.User{
			{ID: "user-001", Name: "John Doe", Email: "john.doe@example.com", Role: domain.RoleAdmin},
			{ID: "user-002", Name: "Jane Smith", Email: "jane.smith@example.com", Role: domain.RoleUser},
			{ID: "user-003", Name: "Bob Johnson", Email: "bob.johnson@example.com", Role: domain.RoleUser},
		},
		Requests: []domain.EquipmentRequest{
			{
				ID:          "req-001",
				EquipmentID: "equip-002",
				UserID:      "user-002",
				UserName:    "Jane Smith",
				RequestDate: instant("2023-05-10T09:30:00Z"),
				StartDate:   instant("2023-05-15T09:00:00Z"),
				EndDate:     instant("2023-05-20T17:00:00Z"),
				Status:      domain.RequestApproved,
				Purpose:     "Company event photography",
				Quantity:    1,
			},
			{
				ID:          "req-002",
				EquipmentID: "equip-001",
				UserID:      "user-003",
				UserName:    "Bob Johnson",
				RequestDate: instant("2023-05-12T14:15:00Z"),
				StartDate:   instant("2023-05-18T09:00:00Z"),
				EndDate:     instant("2023-05-25T17:00:00Z"),
				Status:      domain.RequestPending,
				Purpose:     "Remote work setup",
				Quantity:    1,
			},
			{
				ID:          "req-003",
				EquipmentID: "equip-006",
				UserID:      "user-002",
				UserName:    "Jane Smith",
				RequestDate: instant("2023-05-08T11:45:00Z"),
				StartDate:   instant("2023-05-10T09:00:00Z"),
				EndDate:     instant("2023-05-15T17:00:00Z"),
				ReturnDate:  ptr(instant("2023-05-15T16:30:00Z")),
				Status:      domain.RequestReturned,
				Purpose:     "Client presentation",
				Quantity:    1,
			},
		},
	}
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }
