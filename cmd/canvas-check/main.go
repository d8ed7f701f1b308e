// canvas-check verifies Canvas connectivity with the configured credentials
// and prints every active course with the tool an agent should try first.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"canvas-mcp/internal/canvas"
	"canvas-mcp/internal/config"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(os.Getenv("CANVAS_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("missing env vars: CANVAS_BASE_URL / CANVAS_TOKEN")
	}

	client := canvas.New(cfg.BaseURL, cfg.Token, canvas.Options{
		Timeout:  cfg.RequestTimeout,
		PageSize: cfg.PageSize,
	})

	fmt.Println("Checking", cfg.BaseURL, "...")

	courses, err := client.ListCourses(ctx)
	if err != nil {
		if empty, ok := canvas.AsEmpty(err); ok {
			fmt.Println("OK: connected.", empty.Message)
			return
		}
		if fail, ok := canvas.AsFailure(err); ok {
			log.Fatalf("check failed (%s): %s", fail.Kind, fail.Message)
		}
		log.Fatalf("check failed: %v", err)
	}

	fmt.Printf("OK: fetched %d active courses\n", len(courses))
	for i, c := range courses {
		teacher := ""
		if len(c.Teachers) > 0 {
			teacher = " - " + c.Teachers[0].DisplayName
		}
		fmt.Printf("%d) [%d] %s (%s)%s -> try %s\n",
			i+1, c.ID, c.Name, c.CourseCode, teacher, canvas.RouteForView(c.DefaultView))
	}
}
