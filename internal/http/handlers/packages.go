package handlers

import (
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/packages
func GetPackages(c *gin.Context) {
	list, err := repositories.PackageRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": list, "count": len(list)})
}

// GET /api/packages/:id
func GetPackageByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	pkg, err := repositories.PackageRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

type packageRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	Capacity      *int   `json:"capacity"`
	CurrencyCode  string `json:"currency_code"`
	TripStartDate string `json:"trip_start_date"`
	TripEndDate   string `json:"trip_end_date"`
}

func (r packageRequest) validate() error {
	if utils.TrimOrEmpty(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "nama paket wajib diisi"}
	}
	if r.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "harga tidak boleh negatif"}
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		return domain.ValidationError{Field: "capacity", Msg: "kapasitas tidak boleh negatif"}
	}
	for _, d := range []string{r.TripStartDate, r.TripEndDate} {
		if utils.TrimOrEmpty(d) == "" {
			continue
		}
		if _, err := utils.ParseDate(d); err != nil {
			return domain.ValidationError{Field: "trip_date", Msg: "format tanggal harus YYYY-MM-DD"}
		}
	}
	return nil
}

// POST /api/packages
func CreatePackage(c *gin.Context) {
	var req packageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	currency := utils.NormalizeCode(req.CurrencyCode)
	if currency == "" {
		currency = "IDR"
	}
	pkg := models.TripPackage{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Capacity:      req.Capacity,
		CurrencyCode:  currency,
		TripStartDate: req.TripStartDate,
		TripEndDate:   req.TripEndDate,
	}
	if err := (repositories.PackageRepository{}).Insert(&pkg); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}

type packageUpdateRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	Capacity      *int    `json:"capacity"`
	ClearCapacity bool    `json:"clear_capacity"`
	CurrencyCode  *string `json:"currency_code"`
	TripStartDate *string `json:"trip_start_date"`
	TripEndDate   *string `json:"trip_end_date"`
}

// PUT /api/packages/:id
func UpdatePackage(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req packageUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Price != nil && *req.Price < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "price", Msg: "harga tidak boleh negatif"})
		return
	}

	upd := models.TripPackageUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CurrencyCode:  req.CurrencyCode,
		TripStartDate: req.TripStartDate,
		TripEndDate:   req.TripEndDate,
	}
	if req.Capacity != nil || req.ClearCapacity {
		upd.CapacitySet = true
		if !req.ClearCapacity {
			upd.Capacity = req.Capacity
		}
	}

	repo := repositories.PackageRepository{}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Update(id, upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	pkg, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

// DELETE /api/packages/:id
func DeletePackage(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.PackageRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "paket dihapus"})
}
