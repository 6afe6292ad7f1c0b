package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	googlesheets "google.golang.org/api/sheets/v4"
	"gorm.io/gorm"

	"vedomist/database"
	"vedomist/models"
	"vedomist/payroll"
	"vedomist/report"
	"vedomist/service/excel"
	"vedomist/service/sheets"
	"vedomist/session"
	"vedomist/sftp"
)

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func readFile(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func openDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil
	}

	log.Info("Setting up database ...")
	db, err := database.Open(dsn)
	if err != nil {
		log.Errorf("failed to open database: %v", err)
		return nil
	}

	if err = database.Migrate(db); err != nil {
		log.Errorf("failed to migrate: %v", err)
	}

	return db
}

func persistRoster(db *gorm.DB, sess *session.Session) {
	if err := database.SaveRoster(db, sess.Employees); err != nil {
		log.Errorf("failed to persist roster: %v", err)
	}

	if err := database.SaveSettings(db, sess.Settings); err != nil {
		log.Errorf("failed to persist settings: %v", err)
	}
}

// restoreRoster seeds the session from the stored roster when no input file
// is around. The stored city fills in only when the env left it empty; the
// report date always comes from env or the yesterday default, never from a
// stale stored row.
func restoreRoster(db *gorm.DB, sess *session.Session) error {
	employees, err := database.LoadRoster(db)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return fmt.Errorf("no stored roster")
	}

	stored, err := database.LoadSettings(db)
	if err != nil {
		return err
	}
	if sess.Settings.City == "" {
		sess.Settings.City = stored.City
	}

	sess.Seed(employees)

	return nil
}

func setupSheets(ctx context.Context) (*googlesheets.Service, error) {
	// get bytes from base64 encoded google service accounts key
	credBytes, err := base64.StdEncoding.DecodeString(os.Getenv("KEY_JSON_BASE64"))
	if err != nil {
		return nil, fmt.Errorf("failed to base64 decode KEY_JSON_BASE64: %w", err)
	}

	sheetsSrv, err := googlesheets.NewService(ctx, option.WithCredentialsJSON(credBytes))
	if err != nil {
		return nil, fmt.Errorf("unable initiate google sheets client: %w", err)
	}

	return sheetsSrv, nil
}

func writePDF(rep *report.Report, path string) error {
	header := fmt.Sprintf("%s %s\n\n", rep.Title, rep.DateLabel)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Core fonts have no Cyrillic glyphs, so a UTF-8 font file is required
	// for a readable copy; without one we still emit the PDF for the totals.
	fontFile := getEnv("PDF_FONT_FILE", "assets/DejaVuSansCondensed.ttf")
	if _, err := os.Stat(fontFile); err == nil {
		pdf.AddUTF8Font("report", "", fontFile)
		pdf.SetFont("report", "", 14)
	} else {
		pdf.SetFont("Helvetica", "", 14)
	}
	pdf.MultiCell(0, 8, header, "", "", false)
	pdf.MultiCell(0, 8, rep.Show(), "", "", false)

	return pdf.OutputFileAndClose(path)
}

func uploadReport(localPath string, filename string) {
	server := os.Getenv("SFTP_SERVER")
	if server == "" {
		return
	}

	pk, err := os.ReadFile(getEnv("SFTP_KEY_FILE", "creds/id_rsa"))
	if err != nil {
		log.Errorf("failed to read sftp key: %v", err)
		return
	}

	config := sftp.Config{
		Username:   os.Getenv("SFTP_USERNAME"),
		PrivateKey: string(pk),
		Server:     server,
		Timeout:    time.Second * 30, // 0 for no timeout
	}

	client, err := sftp.New(config)
	if err != nil {
		log.Errorf("failed to connect to %s: %v", server, err)
		return
	}
	defer client.Close()

	remotePath := fmt.Sprintf("%s/%s", strings.TrimRight(getEnv("SFTP_REMOTE_DIR", "vedomist"), "/"), filename)
	if err = client.Upload(localPath, remotePath); err != nil {
		log.Errorf("failed to upload report: %v", err)
		return
	}

	log.Infof("uploaded report to %s:%s", server, remotePath)
}

func pushToSheets(rep *report.Report) {
	spreadsheetId := os.Getenv("SPREADSHEET_ID")
	if spreadsheetId == "" || os.Getenv("KEY_JSON_BASE64") == "" {
		return
	}

	ctx := context.Background()

	sheetsSrv, err := setupSheets(ctx)
	if err != nil {
		log.Errorf("failed to setup sheets: %v", err)
		return
	}

	client := sheets.NewClient(sheetsSrv)
	if err = client.PushReport(ctx, spreadsheetId, getEnv("SHEET_NAME", "Відомість"), rep); err != nil {
		log.Errorf("failed to push report: %v", err)
		return
	}

	log.Infof("pushed report to spreadsheet %s", spreadsheetId)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file: %v", err)
	}

	if os.Getenv("DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	//--- Inputs ---
	rosterFile := getEnv("ROSTER_FILE", "input/roster.txt")
	hoursFile := getEnv("HOURS_FILE", "input/hours.txt")
	outputDir := getEnv("OUTPUT_DIR", "output")

	settings := models.Settings{
		City:       os.Getenv("CITY"),
		ReportDate: os.Getenv("REPORT_DATE"),
	}

	sess := session.New(settings)
	db := openDB()

	//--- Parse Roster ---
	rosterText, err := readFile(rosterFile)
	switch {
	case err == nil:
		count, importErr := sess.ImportRoster(rosterText)
		if importErr != nil {
			log.Fatalf("failed to import roster: %v", importErr)
		}
		log.Infof("parsed %d employees from %s", count, rosterFile)

	case db != nil:
		log.Infof("no roster file, restoring from database: %v", err)
		if restoreErr := restoreRoster(db, sess); restoreErr != nil {
			log.Fatalf("failed to restore roster: %v", restoreErr)
		}

	default:
		log.Fatalf("failed to read roster %s: %v", rosterFile, err)
	}

	//--- Apply Worked Hours ---
	if hoursText, hoursErr := readFile(hoursFile); hoursErr == nil {
		sess.ApplyHours(hoursText)
		log.Infof("applied hours from %s", hoursFile)
	} else {
		log.Warnf("no hours file: %v", hoursErr)
	}

	if bad := sess.InvalidHours(); len(bad) != 0 {
		log.Fatalf("invalid hours, fix before export: %s", strings.Join(bad, "; "))
	}

	//--- Build Report ---
	rep, err := sess.BuildReport()
	if err != nil {
		log.Fatalf("failed to build report: %v", err)
	}

	fmt.Println(rep.Show())

	if err = os.MkdirAll(outputDir, os.ModePerm); err != nil {
		log.Fatal(err)
	}

	//--- Export Workbook ---
	xlsxPath := filepath.Join(outputDir, rep.Filename())
	if err = excel.WriteFile(rep, xlsxPath); err != nil {
		log.Fatalf("failed to write %s: %v", xlsxPath, err)
	}
	log.Infof("wrote %s", xlsxPath)

	//--- Export Payout Register ---
	csvPath := filepath.Join(outputDir, fmt.Sprintf("register_%s.csv", rep.DateLabel))
	f, err := os.Create(csvPath)
	if err != nil {
		log.Fatal(err)
	}

	entries := payroll.BuildRegister(sess.Employees)
	if err = entries.ToCSV(f); err != nil {
		f.Close()
		log.Fatalf("failed to write register: %v", err)
	}
	f.Close()
	log.Infof("wrote %s", csvPath)

	//--- PDF Copy ---
	pdfPath := filepath.Join(outputDir, fmt.Sprintf("vedomist_%s.pdf", rep.DateLabel))
	if err = writePDF(rep, pdfPath); err != nil {
		log.Errorf("failed to write pdf: %v", err)
	} else {
		log.Infof("wrote %s", pdfPath)
	}

	//--- Persist ---
	if db != nil {
		persistRoster(db, sess)
	}

	//--- Deliver ---
	pushToSheets(rep)
	uploadReport(xlsxPath, rep.Filename())
}
