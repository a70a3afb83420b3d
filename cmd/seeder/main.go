package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle is the subset of the vehicle payload the seeder sends and reads back.
type Vehicle struct {
	ID     int    `json:"id,omitempty"`
	Type   string `json:"TipoVehiculo"`
	Plate  string `json:"placa"`
	Brand  string `json:"marca"`
	Model  string `json:"modelo"`
	Year   int    `json:"anio"`
	Status string `json:"estado,omitempty"`
}

type Supplier struct {
	ID       int      `json:"id,omitempty"`
	Name     string   `json:"nombre"`
	Services []string `json:"servicios"`
	Contact  string   `json:"contacto"`
}

type Driver struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"nombre"`
	License string `json:"licencia"`
	Phone   string `json:"telefono"`
}

// Catalog used to generate realistic vehicles
var catalog = map[string]map[string][]string{
	"van":    {"Ford": {"Transit"}, "Renault": {"Master", "Kangoo"}, "Mercedes-Benz": {"Sprinter"}},
	"camion": {"Volvo": {"FH"}, "Hino": {"300"}, "Isuzu": {"NPR"}},
	"sedan":  {"Toyota": {"Corolla"}, "Nissan": {"Versa", "Sentra"}, "Chevrolet": {"Onix"}},
}

var sampleSuppliers = []Supplier{
	{Name: "Taller Mecánico Central", Services: []string{"aceite", "frenos"}, Contact: "555-0100"},
	{Name: "Llantas del Norte", Services: []string{"llantas", "alineación"}, Contact: "555-0101"},
	{Name: "Electro Autos", Services: []string{"eléctrico", "baterías"}, Contact: "555-0102"},
}

var sampleDrivers = []Driver{
	{Name: "Ana Torres", License: "B-10293", Phone: "555-0200"},
	{Name: "Luis Gómez", License: "C-55821", Phone: "555-0201"},
}

// Seeder posts sample records to a running fleet API.
type Seeder struct {
	baseURL string
	client  *http.Client
	rng     *rand.Rand
}

// NewSeeder returns a seeder targeting baseURL.
func NewSeeder(baseURL string) *Seeder {
	return &Seeder{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// post sends body as JSON and decodes the response into out when non-nil.
func (s *Seeder) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST %s failed with status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (s *Seeder) randomVehicle(n int) Vehicle {
	types := []string{"van", "camion", "sedan"}
	vtype := types[s.rng.Intn(len(types))]

	brands := make([]string, 0, len(catalog[vtype]))
	for brand := range catalog[vtype] {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	brand := brands[s.rng.Intn(len(brands))]
	models := catalog[vtype][brand]

	return Vehicle{
		Type:  vtype,
		Plate: fmt.Sprintf("FLT-%03d", n),
		Brand: brand,
		Model: models[s.rng.Intn(len(models))],
		Year:  2018 + s.rng.Intn(7), // 2018-2024
	}
}

// CreateVehicle posts one generated vehicle and returns it with its assigned id.
func (s *Seeder) CreateVehicle(ctx context.Context, n int) (Vehicle, error) {
	var created Vehicle
	if err := s.post(ctx, "/SubirVehiculo", s.randomVehicle(n), &created); err != nil {
		return Vehicle{}, err
	}
	log.WithFields(log.Fields{
		"vehicle_id": created.ID,
		"type":       created.Type,
		"brand":      created.Brand,
		"model":      created.Model,
	}).Info("Created vehicle")
	return created, nil
}

// Result summarizes what a seeding run created.
type Result struct {
	Suppliers    int
	Drivers      int
	Vehicles     []Vehicle
	Maintenance  int
	Reservations int
}

// Run seeds suppliers, drivers and vehicles, then sends the first vehicle
// to maintenance and reserves the second one.
func (s *Seeder) Run(ctx context.Context, vehicles int) (Result, error) {
	var res Result

	for _, sup := range sampleSuppliers {
		if err := s.post(ctx, "/SubirProveedor", sup, nil); err != nil {
			return res, err
		}
		res.Suppliers++
	}
	for _, d := range sampleDrivers {
		if err := s.post(ctx, "/SubirConductor", d, nil); err != nil {
			return res, err
		}
		res.Drivers++
	}

	for i := 0; i < vehicles; i++ {
		v, err := s.CreateVehicle(ctx, i+1)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		res.Vehicles = append(res.Vehicles, v)
	}

	if len(res.Vehicles) > 0 {
		order := map[string]any{
			"idVehiculo":  res.Vehicles[0].ID,
			"proveedor":   sampleSuppliers[0].Name,
			"descripcion": "Cambio de aceite",
		}
		if err := s.post(ctx, "/SubirMantenimiento", order, nil); err != nil {
			return res, err
		}
		res.Maintenance++
		log.WithField("vehicle_id", res.Vehicles[0].ID).Info("Sent vehicle to maintenance")
	}

	if len(res.Vehicles) > 1 {
		start := time.Now().UTC().AddDate(0, 0, 1)
		reservation := map[string]any{
			"idVehiculo":  res.Vehicles[1].ID,
			"idCliente":   1,
			"fechaInicio": start.Format("2006-01-02"),
			"fechaFin":    start.AddDate(0, 0, 3).Format("2006-01-02"),
		}
		if err := s.post(ctx, "/SubirReserva", reservation, nil); err != nil {
			return res, err
		}
		res.Reservations++
		log.WithField("vehicle_id", res.Vehicles[1].ID).Info("Reserved vehicle")
	}

	return res, nil
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3000"
	}

	vehicles := 5
	if val := os.Getenv("SEED_VEHICLES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			vehicles = n
		}
	}

	log.WithFields(log.Fields{
		"api_url":  apiURL,
		"vehicles": vehicles,
	}).Info("Seeding fleet records")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := NewSeeder(apiURL).Run(ctx, vehicles)
	if err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
	log.WithFields(log.Fields{
		"suppliers":    res.Suppliers,
		"drivers":      res.Drivers,
		"vehicles":     len(res.Vehicles),
		"maintenance":  res.Maintenance,
		"reservations": res.Reservations,
	}).Info("Seeding completed")
}
