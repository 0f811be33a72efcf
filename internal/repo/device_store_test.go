package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"userdevice/internal/models"
)

func seedDeviceType(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	dt := models.DeviceType{
		Name:         "sensor",
		Modelname:    "TH-100",
		Manufacturer: "Acme",
	}
	if err := db.Create(&dt).Error; err != nil {
		t.Fatalf("seed device type: %v", err)
	}
	return dt.Type
}

func validDevice(typeID uint, mac string) *models.Device {
	return &models.Device{
		Type:    typeID,
		Name:    "hallway sensor",
		MAC:     mac,
		PinCode: 1234,
	}
}

func TestDeviceStoreCreateGet(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()
	typeID := seedDeviceType(t, db)

	id, err := s.Create(ctx, validDevice(typeID, "AABBCCDDEEFF"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if d.MAC != "aabbccddeeff" {
		t.Errorf("MAC = %s, want lowercase aabbccddeeff", d.MAC)
	}
	if d.Type != typeID || d.PinCode != 1234 {
		t.Errorf("Get() = %+v, want created fields back", d)
	}
}

func TestDeviceStoreCreateInvalid(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()
	typeID := seedDeviceType(t, db)

	cases := map[string]*models.Device{
		"missing type":  {Name: "d", MAC: "aabbccddeeff"},
		"short mac":     {Type: typeID, Name: "d", MAC: "aabbcc"},
		"non-hex mac":   {Type: typeID, Name: "d", MAC: "zzbbccddeeff"},
		"empty name":    {Type: typeID, MAC: "aabbccddeeff"},
		"pin too large": {Type: typeID, Name: "d", MAC: "aabbccddeeff", PinCode: 10000},
		"negative pin":  {Type: typeID, Name: "d", MAC: "aabbccddeeff", PinCode: -1},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Create(ctx, d); !errors.Is(err, models.ErrInvalid) {
				t.Errorf("Create() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDeviceStoreUnknownType(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()

	_, err := s.Create(ctx, validDevice(777, "aabbccddeeff"))
	if !errors.Is(err, models.ErrRefNotExist) {
		t.Fatalf("Create() error = %v, want ErrRefNotExist", err)
	}
}

func TestDeviceStoreDuplicateMAC(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()
	typeID := seedDeviceType(t, db)

	if _, err := s.Create(ctx, validDevice(typeID, "aabbccddeeff")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// другой регистр — тот же адрес после нормализации
	_, err := s.Create(ctx, validDevice(typeID, "AABBCCDDEEFF"))
	if !errors.Is(err, models.ErrExists) {
		t.Fatalf("Create() duplicate error = %v, want ErrExists", err)
	}
}

func TestDeviceStoreQueryMACFilter(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()
	typeID := seedDeviceType(t, db)

	if _, err := s.Create(ctx, validDevice(typeID, "aabbccddeeff")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// фильтр в верхнем регистре обязан найти нормализованную запись
	resp, err := s.Query(ctx, &models.DeviceQuery{
		Page: models.Page{Offset: 0, Limit: 10},
		MAC:  strPtr("AABBCCDDEEFF"),
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("Total = %d len = %d, want 1/1", resp.Total, len(resp.Results))
	}

	resp, err = s.Query(ctx, &models.DeviceQuery{
		Page: models.Page{Offset: 0, Limit: 10},
		Type: uintPtr(typeID + 1),
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("Total = %d, want 0 for unmatched type filter", resp.Total)
	}
}

func TestDeviceStoreUpdateMerge(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()
	typeID := seedDeviceType(t, db)

	id, err := s.Create(ctx, validDevice(typeID, "aabbccddeeff"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Update(ctx, id, &models.DevicePatch{MAC: strPtr("FFEEDDCCBBAA")}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if d.MAC != "ffeeddccbbaa" {
		t.Errorf("MAC = %s, want normalized ffeeddccbbaa", d.MAC)
	}
	if d.Name != "hallway sensor" || d.PinCode != 1234 {
		t.Error("untouched fields changed during merge")
	}

	t.Run("empty patch", func(t *testing.T) {
		if err := s.Update(ctx, id, &models.DevicePatch{}); !errors.Is(err, models.ErrInvalid) {
			t.Errorf("Update() error = %v, want ErrInvalid", err)
		}
	})
	t.Run("patch to unknown type", func(t *testing.T) {
		err := s.Update(ctx, id, &models.DevicePatch{Type: uintPtr(777)})
		if !errors.Is(err, models.ErrRefNotExist) {
			t.Errorf("Update() error = %v, want ErrRefNotExist", err)
		}
	})
}

func TestDeviceStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewDeviceStore(db, testCache())
	ctx := context.Background()
	typeID := seedDeviceType(t, db)

	id, err := s.Create(ctx, validDevice(typeID, "aabbccddeeff"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() repeat error = %v, want ErrNotFound", err)
	}
}
