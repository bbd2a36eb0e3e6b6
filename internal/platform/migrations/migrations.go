package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Repository constructors never migrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&breedRecord{},
		&specieRecord{},
		&personRecord{},
		&clientRecord{},
		&petRecord{},
		&adoptionRecord{},
		&fileRecord{},
		&solicitationRecord{},
		&adoptionIdempotencyRecord{},
	)
}

type breedRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (breedRecord) TableName() string { return "breeds" }

type specieRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (specieRecord) TableName() string { return "species" }

type personRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Email     string    `gorm:"column:email;not null"`
	CPF       string    `gorm:"column:cpf;not null;index"`
	Contact   string    `gorm:"column:contact;size:20"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (personRecord) TableName() string { return "peoples" }

type clientRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	PersonID  int64         `gorm:"column:people_id;not null;index"`
	Person    *personRecord `gorm:"foreignKey:PersonID;constraint:OnDelete:RESTRICT"`
	Bonus     bool          `gorm:"column:bonus;not null;default:false"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

type petRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	Name      string        `gorm:"column:name;size:255;not null"`
	Age       int           `gorm:"column:age;not null;default:0"`
	Weight    float64       `gorm:"column:weight;not null;default:0"`
	Size      string        `gorm:"column:size;type:varchar(16)"`
	BreedID   *int64        `gorm:"column:breed_id;index"`
	Breed     *breedRecord  `gorm:"foreignKey:BreedID;constraint:OnDelete:SET NULL"`
	SpecieID  *int64        `gorm:"column:specie_id;index"`
	Specie    *specieRecord `gorm:"foreignKey:SpecieID;constraint:OnDelete:SET NULL"`
	ClientID  *int64        `gorm:"column:client_id;index"`
	Client    *clientRecord `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time     `gorm:"column:created_at;index"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Adoption requests keep pet_id without a foreign key: intake does not check the pet.
type adoptionRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;size:255;not null"`
	Contact      string    `gorm:"column:contact;size:20;not null"`
	Email        string    `gorm:"column:email;not null"`
	CPF          string    `gorm:"column:cpf;not null"`
	Observations string    `gorm:"column:observations;type:text;not null"`
	PetID        int64     `gorm:"column:pet_id;not null;index"`
	Status       string    `gorm:"column:status;size:20;not null;default:PENDENTE;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (adoptionRecord) TableName() string { return "adoptions" }

type fileRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Size      int64     `gorm:"column:size;not null"`
	Mime      string    `gorm:"column:mime;size:255"`
	URL       string    `gorm:"column:url;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (fileRecord) TableName() string { return "files" }

type solicitationRecord struct {
	ID                  string        `gorm:"primaryKey;column:id;type:uuid"`
	ClientID            int64         `gorm:"column:client_id;not null;index"`
	Client              *clientRecord `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	CPF                 *int64        `gorm:"column:cpf"`
	CPFFile             *fileRecord   `gorm:"foreignKey:CPF"`
	RG                  *int64        `gorm:"column:rg"`
	RGFile              *fileRecord   `gorm:"foreignKey:RG"`
	DocumentAddress     *int64        `gorm:"column:document_address"`
	DocumentAddressFile *fileRecord   `gorm:"foreignKey:DocumentAddress"`
	TermAdoption        *int64        `gorm:"column:term_adoption"`
	TermAdoptionFile    *fileRecord   `gorm:"foreignKey:TermAdoption"`
	CreatedAt           time.Time     `gorm:"column:created_at"`
	UpdatedAt           time.Time     `gorm:"column:updated_at"`
}

func (solicitationRecord) TableName() string { return "solicitations_documents" }

type adoptionIdempotencyRecord struct {
	Key            string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash    string    `gorm:"column:request_hash;size:128;not null"`
	AdoptionID     int64     `gorm:"column:adoption_id;not null;index"`
	ClientID       int64     `gorm:"column:client_id;not null"`
	SolicitationID string    `gorm:"column:solicitation_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (adoptionIdempotencyRecord) TableName() string { return "adoption_idempotency_keys" }
