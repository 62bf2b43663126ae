package main

import (
	"flag"

	"bulusma.link/configs"
	"bulusma.link/configs/configsdatabase"
	"bulusma.link/configs/configslog"
	"bulusma.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	if _, err := configs.LoadConfig(); err != nil {
		configslog.SLog.Fatalf("Konfigürasyon yüklenemedi: %v", err)
	}

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
