package seeders

import "equipment-dashboard/internal/entities"

var usersData = []struct {
	Name  string
	Email string
	Role  string
}{
	{Name: "Dana Moreno", Email: "dana.manager@gym.local", Role: "equipment_manager"},
	{Name: "Chris Ortiz", Email: "chris.tech@gym.local", Role: "equipment_manager"},
}

var equipmentData = []struct {
	Name         string
	Type         string
	Status       entities.EquipmentStatus
	Location     string
	SerialNumber string
	Manufacturer string
	PurchaseDate string
	Warranty     string
	Cost         float64
}{
	{"Treadmill T5", "Cardio", entities.EquipmentAvailable, "Floor 1", "TM-0001", "Life Fitness", "2022-03-14", "2027-03-14", 4999.00},
	{"Treadmill T5", "Cardio", entities.EquipmentInUse, "Floor 1", "TM-0002", "Life Fitness", "2022-03-14", "2027-03-14", 4999.00},
	{"Elliptical E3", "Cardio", entities.EquipmentMaintenance, "Floor 1", "EL-0001", "Precor", "2021-06-01", "2024-06-01", 3250.50},
	{"Rowing Machine", "Cardio", entities.EquipmentAvailable, "Floor 2", "RW-0001", "Concept2", "2023-01-20", "2025-01-20", 990.00},
	{"Power Rack", "Strength", entities.EquipmentAvailable, "Weights Room", "PR-0001", "Rogue", "2020-09-10", "", 1495.00},
	{"Cable Crossover", "Strength", entities.EquipmentOutOfOrder, "Weights Room", "CC-0001", "Hammer Strength", "2019-11-05", "2022-11-05", 6200.00},
	{"Spin Bike", "Cycling", entities.EquipmentRetired, "Studio B", "SB-0001", "Keiser", "2016-04-02", "2019-04-02", 2100.00},
}

var inventoryData = []struct {
	Name      string
	Category  string
	Quantity  int
	MinQty    int
	UnitPrice float64
	Supplier  string
	Location  string
}{
	{"Treadmill belt lubricant", "Lubricants", 12, 4, 18.99, "FitParts Co", "Store room"},
	{"Disinfectant wipes (pack)", "Cleaning", 3, 10, 7.50, "CleanPro", "Front desk"},
	{"Resistance band set", "Accessories", 0, 2, 24.00, "BandWorks", "Studio B"},
	{"Spin bike pedal pair", "Spare parts", 6, 2, 32.25, "Keiser", "Store room"},
}

var maintenanceData = []struct {
	SerialNumber string
	DaysFromNow  int
	Description  string
	Priority     entities.MaintenancePriority
	Status       entities.MaintenanceStatus
	Cost         float64
}{
	{"TM-0001", 3, "Belt tension and lubrication", entities.PriorityMedium, entities.MaintenanceScheduled, 45},
	{"EL-0001", -2, "Replace drive belt", entities.PriorityHigh, entities.MaintenanceInProgress, 180},
	{"CC-0001", -10, "Cable fraying inspection", entities.PriorityHigh, entities.MaintenanceScheduled, 0},
	{"RW-0001", -30, "Chain cleaning", entities.PriorityLow, entities.MaintenanceCompleted, 20},
}
