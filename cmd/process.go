/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/thinknotes-be/service"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate study material from a local document",
	Long: `Runs the full pipeline against a local PDF or DOCX file without
starting the server. The summary is printed to stdout and the rendered
study sheet is written next to the input file unless --no-pdf is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		output, _ := cmd.Flags().GetString("output")
		noPDF, _ := cmd.Flags().GetBool("no-pdf")
		model, _ := cmd.Flags().GetString("model")

		if filePath == "" {
			log.Fatal("Missing required flag: --file")
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", filePath, err)
		}

		geminiService, err := service.NewGeminiService(
			strings.Split(os.Getenv("GEMINI_API_KEY"), ","), model)
		if err != nil {
			log.Fatalf("Failed to create Gemini service: %v", err)
		}
		defer geminiService.Close()

		studyService := service.NewStudyService(
			service.NewExtractService(),
			service.NewContentService(geminiService),
			service.NewPDFBuilderService(),
		)

		resp, err := studyService.ProcessWithStatus(context.Background(), data,
			filepath.Base(filePath), !noPDF,
			func(stage, message string) {
				log.Printf("[%s] %s", stage, message)
			})
		if err != nil {
			log.Fatalf("Failed to process %s: %v", filePath, err)
		}

		fmt.Println(resp.Summary)
		for i, card := range resp.Flashcards {
			if fc, ok := service.CoerceFlashcard(card); ok {
				fmt.Printf("Q%d: %s\nA%d: %s\n", i+1, fc.Question, i+1, fc.Answer)
			}
		}

		if noPDF {
			return
		}
		if resp.PdfError != "" {
			log.Println(resp.PdfError)
			return
		}
		if output == "" {
			base := strings.TrimSuffix(filePath, filepath.Ext(filePath))
			output = base + "_study.pdf"
		}
		if resp.PdfB64 == nil {
			return
		}
		pdfData, err := base64.StdEncoding.DecodeString(*resp.PdfB64)
		if err != nil {
			log.Fatalf("Failed to decode PDF: %v", err)
		}
		if err := os.WriteFile(output, pdfData, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", output, err)
		}
		fmt.Println("Wrote study sheet to", output)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("file", "f", "", "Path to the PDF or DOCX file to process")
	processCmd.Flags().StringP("output", "o", "", "Path for the rendered study sheet (default <file>_study.pdf)")
	processCmd.Flags().Bool("no-pdf", false, "Skip rendering the study sheet")
	processCmd.Flags().StringP("model", "m", "gemini-2.5-flash", "Gemini model to use")
}
