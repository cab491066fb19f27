package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/eventbus"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// worldsim — безголовый цикл симуляции: генерирует и стримит ландшафт
// вокруг блуждающего актора, гоняет гравитацию и коллизии микрошагами
// и экспортирует метрики. Рендерер здесь headless: геометрия
// учитывается, но никуда не рисуется.
func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	frames := flag.Int("frames", 0, "число кадров (0 — до SIGINT)")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка инициализации логирования: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.LogError("Ошибка чтения конфигурации: %v", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	seed := cfg.World.GetSeed()
	gen := world.NewTerrainGenerator(seed, nil)
	if cfg.World.Octaves > 0 {
		gen.Octaves = cfg.World.Octaves
	}
	if cfg.World.MaxHeight > 0 {
		gen.MaxHeight = cfg.World.MaxHeight
	}
	if cfg.World.SmoothnessMin > 0 && cfg.World.SmoothnessMax >= cfg.World.SmoothnessMin {
		gen.SmoothnessMin = cfg.World.SmoothnessMin
		gen.SmoothnessMax = cfg.World.SmoothnessMax
	}

	renderer := world.NewHeadlessRenderer()
	w := world.NewWorld(gen, renderer, world.Params{
		VisibilityRadius: cfg.World.GetVisibilityRadius(),
		GenerationMargin: cfg.World.GetGenerationMargin(),
	})

	metrics := world.NewMetrics()
	metrics.StartHTTP(fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort()))
	w.SetMetrics(metrics)

	bus := eventbus.NewMemoryBus(256)
	eventbus.Init(bus)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.LogWarn("Не удалось подписать лог на события: %v", err)
	}
	busExporter := eventbus.NewMetricsExporter(bus)
	busExporter.Start(time.Second)
	defer busExporter.Stop()

	logging.LogInfo("Мир создан: сид %d, радиус видимости %d чанков",
		seed, cfg.World.GetVisibilityRadius())

	run(w, cfg, *frames)
}

// run крутит кадровый цикл до исчерпания кадров или SIGINT.
func run(w *world.World, cfg *config.Config, frames int) {
	fps := cfg.Sim.GetFramesPerSec()
	budget := time.Duration(cfg.Sim.GetTimeBudgetMs()) * time.Millisecond
	gameSpeed := cfg.Sim.GetGameSpeed()
	gravity := cfg.Sim.GetGravity()
	terminal := cfg.Sim.GetTerminalVelocity()
	microSteps := cfg.Sim.GetMicroSteps()

	actor := NewActor(vec.Vec3Float{X: 8, Y: 14, Z: 8})
	actor.Velocity[0] = -1 // идём вперёд

	wander := rand.New(rand.NewSource(time.Now().UnixNano()))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	frameTime := 1.0 / float64(fps)
	frame := 0
	for {
		select {
		case <-sigs:
			logging.LogInfo("Получен сигнал завершения")
			return
		case <-ticker.C:
		}

		w.LoadAround(actor.Position)
		w.Drain(budget)

		// Движение маленькими порциями, иначе при быстром падении можно
		// провалиться сквозь блок.
		dt := frameTime * gameSpeed / float64(microSteps)
		for step := 0; step < microSteps; step++ {
			actor.UpdatePosition(dt)
			actor.ApplyGravity(dt, gravity, terminal)
			actor.Position = physics.Resolve(actor.Position, actor.Height, w.IsOccupied)
		}
		// Стоим на блоке — сбрасываем накопленную скорость падения.
		below := actor.Position.Discretize()
		below.Y -= 1
		if w.IsOccupied(below) {
			actor.Velocity[1] = 0
		}

		frame++
		if frame%(fps*2) == 0 {
			actor.Yaw += float64(wander.Intn(91) - 45) // случайный поворот
			logging.LogActorPosition(actor.Position.X, actor.Position.Y, actor.Position.Z)
		}
		if frame%(fps*5) == 0 {
			interact(w, actor)
			buildLen, genLen := w.PendingWork()
			logging.LogInfo("Кадр %d: блоков %d, отрисовано %d, чанков %d, очереди %d/%d",
				frame, w.BlockCount(), w.DrawnCount(), w.GeneratedChunkCount(), buildLen, genLen)
		}

		if frames > 0 && frame >= frames {
			logging.LogInfo("Симуляция завершена: %d кадров", frame)
			return
		}
	}
}

// interact имитирует редактирование мира игроком: трассирует луч вниз
// по направлению взгляда и кладёт кирпич на первую найденную твёрдую
// ячейку. Действие выполняется только при полном попадании — когда
// известны и предыдущая, и текущая ячейки.
func interact(w *world.World, actor *Actor) {
	dir := actor.LookDirection()
	dir.Y = -0.7 // смотрим вперёд и вниз
	previous, hit, ok := hitTest(w, actor.Position, dir, 8)
	if !ok {
		return
	}
	logging.LogDebug("Луч: попадание в %v, ставим кирпич в %v", hit, previous)
	w.Place(previous, block.BrickBlockID)
}
