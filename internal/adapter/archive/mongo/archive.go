// Package mongoarchive stores terminal mission summaries in a MongoDB
// collection so dashboards can browse and compare past missions.
package mongoarchive

import (
	"context"
	"fmt"
	"time"

	"forestguardian/internal/app/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const missionCollection = "missions"

type missionDoc struct {
	EpisodeID         string    `bson:"episode_id"`
	Status            string    `bson:"status"`
	Steps             int       `bson:"steps"`
	TotalReward       float64   `bson:"total_reward"`
	InitialTrees      int       `bson:"initial_trees"`
	FinalTrees        int       `bson:"final_trees"`
	TreesSavedPct     float64   `bson:"trees_saved_pct"`
	FiresExtinguished int       `bson:"fires_extinguished"`
	WaterUsed         int       `bson:"water_used"`
	OperarioCount     int       `bson:"operario_count"`
	NavegadorCount    int       `bson:"navegador_count"`
	PolicyFailures    int       `bson:"policy_failures"`
	GridSize          int       `bson:"grid_size"`
	NumAgents         int       `bson:"num_agents"`
	FireSpreadProb    float64   `bson:"fire_spread_prob"`
	Seed              int64     `bson:"seed"`
	EndedAt           time.Time `bson:"ended_at"`
}

func toDoc(s ports.MissionSummary) missionDoc {
	return missionDoc(s)
}

func fromDoc(d missionDoc) ports.MissionSummary {
	return ports.MissionSummary(d)
}

type Archive struct {
	collection *mongo.Collection
}

// Connect dials the MongoDB deployment and returns an Archive over the
// mission collection, with a descending index on ended_at for the
// recent-missions query.
func Connect(ctx context.Context, uri, database string) (*Archive, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	collection := client.Database(database).Collection(missionCollection)
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ended_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create mission index: %w", err)
	}
	return &Archive{collection: collection}, nil
}

func NewArchive(collection *mongo.Collection) *Archive {
	return &Archive{collection: collection}
}

func (a *Archive) SaveMission(ctx context.Context, summary ports.MissionSummary) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"episode_id": summary.EpisodeID}
	update := bson.M{"$set": toDoc(summary)}
	_, err := a.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save mission %s: %w", summary.EpisodeID, err)
	}
	return nil
}

func (a *Archive) RecentMissions(ctx context.Context, limit int) ([]ports.MissionSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "ended_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := a.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recent missions: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []missionDoc{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode missions: %w", err)
	}
	out := make([]ports.MissionSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDoc(d))
	}
	return out, nil
}

// OnStep lets the archive sit directly on the episode's sink list; it only
// acts on the terminal snapshot.
func (a *Archive) OnStep(ctx context.Context, snap ports.StepSnapshot) error {
	if !snap.Terminal || snap.Summary == nil {
		return nil
	}
	return a.SaveMission(ctx, *snap.Summary)
}
