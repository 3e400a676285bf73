package source

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gyeh/hisdash/internal/model"
)

type sampleDoctor struct{ name, code, dept string }
type sampleService struct {
	name, group string
	price       float64
}
type sampleDisease struct{ code, text string }

var (
	sampleDoctors = []sampleDoctor{
		{"Nguyễn Văn A", "BS001", "Nội Tổng hợp"},
		{"Lê Thị B", "BS002", "Ngoại Thần kinh"},
		{"Trần Văn C", "BS003", "Sản"},
		{"Phạm Minh D", "BS004", "Nhi"},
		{"Hoàng Anh E", "BS005", "Hồi sức tích cực"},
		{"Đỗ Thu F", "BS006", "Cấp cứu"},
		{"Vũ Quang G", "BS007", "Tim mạch"},
	}
	sampleServices = []sampleService{
		{"Siêu âm bụng", "Chẩn đoán hình ảnh", 250000},
		{"Chụp CT-Scanner", "Chẩn đoán hình ảnh", 1500000},
		{"Xét nghiệm máu tổng quát", "Xét nghiệm", 500000},
		{"Nội soi dạ dày", "Thủ thuật", 800000},
		{"Phẫu thuật nội soi", "Phẫu thuật", 12000000},
		{"Khám bệnh", "Khám bệnh", 150000},
	}
	sampleDiseases = []sampleDisease{
		{"K29.0", "Viêm dạ dày cấp"},
		{"I10", "Tăng huyết áp vô căn"},
		{"J18.9", "Viêm phổi"},
		{"E11.9", "Đái tháo đường typ 2"},
		{"O80", "Đẻ thường"},
		{"S06.0", "Chấn động não"},
	}
	sampleOutcomes = []string{"Khỏi", "Đỡ", "Giảm", "Chuyển viện", "Tử vong"}
)

// Sample generates a deterministic synthetic dataset: Count rows (100 when
// zero) dated within the 180 days before Now, drawn from a fixed set of
// departments, doctors, services and diagnoses.
type Sample struct {
	Count int
	Seed  int64
	Now   time.Time
}

func (s *Sample) Name() string { return fmt.Sprintf("sample:%d", s.count()) }

func (s *Sample) count() int {
	if s.Count <= 0 {
		return 100
	}
	return s.Count
}

func (s *Sample) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.Now
	if now.IsZero() {
		now = time.Now()
	}
	rng := rand.New(rand.NewSource(s.Seed))
	const day = 24 * time.Hour
	const layout = "02/01/2006"

	n := s.count()
	t := &Table{Headers: model.Headers(), Rows: make([]model.Row, 0, n)}
	for i := 0; i < n; i++ {
		doc := sampleDoctors[rng.Intn(len(sampleDoctors))]
		svc := sampleServices[rng.Intn(len(sampleServices))]
		dis := sampleDiseases[rng.Intn(len(sampleDiseases))]
		stay := rng.Intn(15) + 1
		outcome := sampleOutcomes[rng.Intn(len(sampleOutcomes))]
		class := "Dịch vụ"
		if rng.Float64() > 0.3 {
			class = "Bảo hiểm"
		}

		admitted := now.Add(-time.Duration(rng.Intn(180)+stay) * day)
		discharged := admitted.Add(time.Duration(stay) * day)
		paid := discharged.Add(day)
		amount := math.Round(svc.price + rng.Float64()*200000)

		t.Rows = append(t.Rows, model.Row{
			"MA_BN":            fmt.Sprintf("BN%d", 1000+i),
			"MA_BA":            fmt.Sprintf("BA%d", 2000+i),
			"SO_VAO_VIEN":      fmt.Sprintf("VV%d", 3000+i),
			"DOI_TUONG":        class,
			"NGAY_VAO_VIEN":    admitted.Format(layout),
			"NGAY_VAO_KHOA":    admitted.Format(layout),
			"NGAY_RA_VIEN":     discharged.Format(layout),
			"NGAY_THANH_TOAN":  paid.Format(layout),
			"KHOA":             doc.dept,
			"MA_KHOA_CHI_DINH": "K001",
			"BAC_SY":           doc.name,
			"MA_BAC_SY":        doc.code,
			"CHAN_DOAN":        dis.text,
			"MA_BENH":          dis.code,
			"CHAN_DOAN_KHAC":   "",
			"TEN_NHOM":         svc.group,
			"DICH_VU":          svc.name,
			"THANH_TIEN":       fmt.Sprintf("%.0f", amount),
			"KET_QUA_DTRI":     outcome,
			"TINH_TRANG_RV":    "Ổn định",
			"SO_NGAY_DTRI":     fmt.Sprintf("%d", stay),
		})
	}
	return t, nil
}
