// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-catalog/pkg/adapter/restful/cardto"
	"github.com/momeni/car-catalog/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-catalog/pkg/core/model"
)

// DserCarID deserializes the car ID from the :id path parameter or,
// if it is missing, from the id query parameter. When no valid ID can
// be found, a 400 response is written and false is returned.
func DserCarID(c *gin.Context) (int64, bool) {
	name, raw := "id", c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	var errs map[string][]string
	if !serdser.Assert(&errs, raw != "", name, "The car id is required.") {
		c.JSON(http.StatusBadRequest, errs)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if !serdser.Assert(&errs, err == nil, name, "The car id must be an integer.") {
		c.JSON(http.StatusBadRequest, errs)
		return 0, false
	}
	return id, true
}

// DserCarParams binds the JSON request body as a cardto.CarDTO and
// converts it to the model.CarParams. Domain validation is left to the
// use case, so only the wire shape is checked here.
func DserCarParams(c *gin.Context) (model.CarParams, bool) {
	dto := &cardto.CarDTO{}
	if ok := serdser.Bind(c, dto, binding.JSON); !ok {
		return model.CarParams{}, false
	}
	ft, err := model.ParseFuelType(dto.FuelType)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "FuelType", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return model.CarParams{}, false
	}
	return model.CarParams{
		ID:         dto.ID,
		Name:       dto.Name,
		Brand:      dto.Brand,
		Year:       dto.Year,
		FuelType:   ft,
		Horsepower: dto.Horsepower,
	}, true
}
