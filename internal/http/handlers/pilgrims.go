package handlers

import (
	"net/http"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/pilgrims
func GetPilgrims(c *gin.Context) {
	list, err := repositories.PilgrimRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pilgrims": list, "count": len(list)})
}

// GET /api/pilgrims/:id
func GetPilgrimByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	repo := repositories.PilgrimRepository{}
	p, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	passports, _ := repo.ListPassports(intconfig.DB, id)
	c.JSON(http.StatusOK, gin.H{"pilgrim": p, "passports": passports})
}

type pilgrimRequest struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
}

// POST /api/pilgrims
func CreatePilgrim(c *gin.Context) {
	var req pilgrimRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p := models.Pilgrim{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Nationality: req.Nationality,
	}
	if err := (repositories.PilgrimRepository{}).Insert(&p); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pilgrim": p})
}

// GET /api/pilgrims/:id/passports
func GetPilgrimPassports(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	passports, err := repositories.PilgrimRepository{}.ListPassports(intconfig.DB, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passports": passports, "count": len(passports)})
}

type passportRequest struct {
	PassportNo string `json:"passport_no"`
	IssuedDate string `json:"issued_date"`
	ExpiryDate string `json:"expiry_date"`
}

// POST /api/pilgrims/:id/passports
func CreatePilgrimPassport(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req passportRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.PilgrimRepository{}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	p := models.Passport{
		PilgrimID:  id,
		PassportNo: req.PassportNo,
		IssuedDate: req.IssuedDate,
		ExpiryDate: req.ExpiryDate,
	}
	if err := repo.InsertPassport(&p); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"passport": p})
}
