package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/config"
	"github.com/simply1git/vibe-check/internal/db"
	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/repository"
	"github.com/simply1git/vibe-check/internal/service"
	"github.com/simply1git/vibe-check/internal/vibe"
)

const (
	demoGroupName = "The Vibe Squad"
	demoPin       = "1234"
)

// Respuestas enlatadas por miembro para que el grupo demo tenga perfiles,
// compatibilidades y quizzes jugables desde el primer request.
var demoMembers = map[string]domain.AnswerMap{
	"Alex": {
		"q1":  {Val: "Neon Nights"},
		"q6":  {Val: "Still asleep"},
		"q13": {Val: "Already in the car"},
		"q30": {Val: "Call"},
		"q33": {Val: "Wing it"},
	},
	"Jordan": {
		"q1":  {Val: "Pastel Dream"},
		"q6":  {Val: "At the gym"},
		"q13": {Val: "Can I see the plan first?"},
		"q30": {Val: "Text"},
		"q33": {Val: "Plan it"},
	},
	"Taylor": {
		"q1":  {Val: "Earthy Tones"},
		"q6":  {Val: "Doing chores"},
		"q13": {Val: "Already in the car"},
		"q30": {Val: "Call"},
		"q33": {Val: "Wing it"},
	},
	"Casey": {
		"q1":  {Val: "Monochrome Noir"},
		"q6":  {Val: "Still asleep"},
		"q13": {Val: "No thanks"},
		"q30": {Val: "Text"},
		"q33": {Val: "Plan it"},
	},
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	groupRepo := repository.NewPgGroupRepository(pool)
	memberRepo := repository.NewPgMemberRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	quizRepo := repository.NewPgQuizRepository(pool)

	engine := vibe.NewEngine(cat)
	groupSvc := service.NewGroupService(logger, groupRepo, memberRepo, nil)
	profileSvc := service.NewProfileService(logger, memberRepo, profileRepo, engine)
	quizSvc := service.NewQuizService(logger, cat, memberRepo, profileRepo, quizRepo)

	group, err := groupSvc.CreateGroup(ctx, demoGroupName, demoPin)
	if err != nil {
		log.Fatalf("create group: %v", err)
	}
	fmt.Printf("group %q created: slug=%s pin=%s\n", group.Name, group.Slug, demoPin)

	memberIDs := make(map[string]string, len(demoMembers))
	for name, answers := range demoMembers {
		_, member, err := groupSvc.Join(ctx, group.Slug, name, demoPin, "seed")
		if err != nil {
			log.Fatalf("join %s: %v", name, err)
		}
		if _, err := profileSvc.SaveAnswers(ctx, member.ID, answers, 7); err != nil {
			log.Fatalf("save answers for %s: %v", name, err)
		}
		memberIDs[name] = member.ID
		fmt.Printf("  member %s: %s\n", name, member.ID)
	}

	for name, id := range memberIDs {
		count, err := quizSvc.GenerateForMember(ctx, group.ID, id)
		if err != nil {
			log.Fatalf("generate quiz for %s: %v", name, err)
		}
		fmt.Printf("  quiz for %s: %d questions\n", name, count)
	}

	fmt.Println("done")
}
