package response

// Storefront copy shown to shoppers and merchants. The product ships in Turkish.
const (
	MsgUploaded         = "Dosya başarıyla yüklendi"
	MsgUploadedBatchFmt = "%d dosya başarıyla yüklendi"
	MsgDeleted          = "Dosya başarıyla silindi"

	MsgNoFile          = "Dosya yüklenmedi"
	MsgInvalidType     = "Geçersiz dosya türü. Sadece JPG, PNG, GIF ve WebP desteklenir."
	MsgFileTooLargeFmt = "Dosya boyutu çok büyük. Maksimum %s olmalıdır."
	MsgEmptyFile       = "Dosya boş"
	MsgTooManyFilesFmt = "Çok fazla dosya. En fazla %d dosya yüklenebilir."
	MsgBadForm         = "Geçersiz form verisi"
	MsgNotFound        = "Dosya bulunamadı"

	MsgUploadFailed      = "Dosya yüklenirken hata oluştu"
	MsgBatchUploadFailed = "Dosyalar yüklenirken hata oluştu"
	MsgListFailed        = "Resimler listelenirken hata oluştu"
	MsgDeleteFailed      = "Dosya silinirken hata oluştu"
	MsgServerError       = "Sunucu hatası"
)
