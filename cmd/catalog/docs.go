package main

// @title Product Catalog Service API
// @version 1.0
// @description Catalog service maintaining the product catalog and fanning
// @description out domain events to the search, batch, rating and order services.

// @host localhost:8081
// @BasePath /
